package recall

import (
	"context"
	"sort"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/retry"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

// 趋势分的互动权重
const (
	trendLikeWeight    = 3
	trendCommentWeight = 5
	trendViewWeight    = 0.1

	trendBookingWeight = 10
	trendPkgViewWeight = 0.5
	trendRatingWeight  = 2
)

// TrendingRecall 是与画像无关的趋势召回源：
// score = engagement × timeDecay，衰减在窗口内随物品年龄线性递减到 0。
// 冷启动用户（空画像）的整个响应就降级为这一个源。
type TrendingRecall struct {
	Catalog core.Catalog

	// Window 趋势窗口（1d/7d/30d/90d）
	Window time.Duration

	// Type 非空时只看该类型
	Type core.ItemType

	// TopK 返回的候选上限，<=0 取 50
	TopK int

	// Now 便于测试注入时钟
	Now func() time.Time
}

func (r *TrendingRecall) Name() string { return "recall.trending" }

func (r *TrendingRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || r.Window <= 0 {
		return nil, nil
	}

	var candidates []core.CatalogItem
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		candidates, inner = r.Catalog.CreatedWithin(ctx, r.Window, r.Type)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUpstreamUnavail,
			"catalog unavailable: "+err.Error())
	}

	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		score := TrendingScore(c, now, r.Window)
		if score <= 0 {
			continue
		}
		it := core.NewItem(c.Ref())
		it.Score = score
		it.Meta["created_at"] = c.CreatedAt()
		it.PutLabel("recall_source", utils.Label{Value: string(core.SourceTrending), Source: "recall"})
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAtMeta().After(out[j].CreatedAtMeta())
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 50
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// TrendingScore 计算单个物品的趋势分。
//
// 内容：engagement = 3·likes + 5·comments + 0.1·views
// 套餐：engagement = 10·bookings + 0.5·views + 2·rating
// timeDecay = max(0, 1 − ageDays/windowDays)：互动不变时分数随年龄严格递减，直到归零。
func TrendingScore(c core.CatalogItem, now time.Time, window time.Duration) float64 {
	eng := c.Engagement()

	var engagement float64
	switch c.Ref().Type {
	case core.ItemTypePackage:
		engagement = trendBookingWeight*float64(eng.Bookings) +
			trendPkgViewWeight*float64(eng.Views) +
			trendRatingWeight*eng.Rating
	default:
		engagement = trendLikeWeight*float64(eng.Likes) +
			trendCommentWeight*float64(eng.Comments) +
			trendViewWeight*float64(eng.Views)
	}

	ageDays := now.Sub(c.CreatedAt()).Hours() / 24
	windowDays := window.Hours() / 24
	decay := 1 - ageDays/windowDays
	if decay < 0 {
		decay = 0
	}
	return engagement * decay
}
