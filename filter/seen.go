package filter

import (
	"context"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/conv"
)

// seenMemoKey 在请求上下文里缓存已接触集合，避免逐物品重复拉取行为日志。
const seenMemoKey = "seen_items"

// SeenFilter 过滤掉用户已经接触过（创作/点赞/预订）的物品。
// 默认不启用：批内去重由融合层负责，协同召回自带已接触排除；
// 需要"绝不重复推荐"的场景可把它挂进 Pipeline。
type SeenFilter struct {
	Activities core.ActivityRepository

	// Kinds 视为"已接触"的行为类型，为空时取 authored/liked/booked
	Kinds []core.ActivityKind
}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) kinds() []core.ActivityKind {
	if len(f.Kinds) > 0 {
		return f.Kinds
	}
	return []core.ActivityKind{core.ActivityAuthored, core.ActivityLiked, core.ActivityBooked}
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Activities == nil || rctx == nil || rctx.UserID == "" || item == nil {
		return false, nil
	}

	seen, err := f.seenSet(ctx, rctx)
	if err != nil {
		return false, err
	}
	return seen[item.Ref], nil
}

func (f *SeenFilter) seenSet(ctx context.Context, rctx *core.RecommendContext) (map[core.ItemRef]bool, error) {
	if memo := conv.ConfigGet[map[core.ItemRef]bool](rctx.Params, seenMemoKey, nil); memo != nil {
		return memo, nil
	}

	events, err := f.Activities.UserEvents(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}

	seen := make(map[core.ItemRef]bool, len(events))
	for _, ev := range events {
		for _, k := range f.kinds() {
			if ev.Kind == k {
				seen[ev.Target] = true
				break
			}
		}
	}

	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[seenMemoKey] = seen
	return seen, nil
}
