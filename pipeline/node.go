package pipeline

import (
	"context"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：三个策略源并发生成候选
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选（如类型过滤）
	KindFusion Kind = "fusion" // 融合阶段：跨源去重、合并来源、按分排序
	KindReRank Kind = "rerank" // 重排阶段：截断等最终修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，召回生成、过滤截断、融合重排都是同一形状。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
