package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 推荐结果的 reason 字段就由 recall_source 标签合并而来。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / fusion / rule ...
}

// MergeLabel 合并同名 Label，遵循"保留历史、可追踪"的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 融合层依赖该规则把多个召回源的贡献累积到一个标签里。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

// SplitValues 把合并后的 Label.Value 拆回去重后的原始值列表，保持出现顺序。
func SplitValues(l Label) []string {
	if l.Value == "" {
		return nil
	}
	seen := make(map[string]bool, 4)
	out := make([]string, 0, 4)
	start := 0
	for i := 0; i <= len(l.Value); i++ {
		if i == len(l.Value) || l.Value[i] == '|' {
			v := l.Value[start:i]
			if v != "" && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
			start = i + 1
		}
	}
	return out
}
