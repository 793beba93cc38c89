// Package rerank 是融合与重排层：跨源去重、按分排序、截断。
package rerank

import (
	"context"
	"sort"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pipeline"
)

// Fusion 把多个召回源的候选合并成一个有序、无重复的列表。
//
// 规则：
//   - 按 (type, id) 去重，保留分数最高的实例
//   - 被合并实例的标签并入保留实例（recall_source 累积出全部贡献来源）
//   - 按分数降序；同分时新物品优先
//
// 置信度不在这里算：它只依赖画像信号数，由引擎在组装批次时计算。
type Fusion struct{}

func (n *Fusion) Name() string        { return "fusion" }
func (n *Fusion) Kind() pipeline.Kind { return pipeline.KindFusion }

func (n *Fusion) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	best := make(map[string]*core.Item, len(items))
	order := make([]string, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		key := it.Ref.Key()
		old, ok := best[key]
		if !ok {
			best[key] = it
			order = append(order, key)
			continue
		}
		if it.Score > old.Score {
			// 新实例胜出：继承旧实例的标签（旧来源仍计入 reason）
			for k, v := range old.Labels {
				it.PutLabel(k, v)
			}
			best[key] = it
			continue
		}
		for k, v := range it.Labels {
			old.PutLabel(k, v)
		}
	}

	out := make([]*core.Item, 0, len(best))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAtMeta().After(out[j].CreatedAtMeta())
	})
	return out, nil
}
