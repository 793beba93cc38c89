// Package recall 实现三个召回策略源：内容、协同、趋势，
// 以及把它们并发编排起来的 Fanout 节点。
package recall

import (
	"context"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// Source 表示一个可复用的召回源（内容/协同/趋势）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
