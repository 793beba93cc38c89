package filter

import (
	"context"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// TypeFilter 按请求的类型约束过滤（GeneratePersonalized 的可选 type 参数）。
// 过滤发生在融合之后、截断之前，因此类型约束不影响各源内部的打分。
type TypeFilter struct{}

func (f *TypeFilter) Name() string { return "filter.type" }

func (f *TypeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if rctx == nil || rctx.FilterType == "" {
		return false, nil
	}
	return item.Ref.Type != rctx.FilterType, nil
}
