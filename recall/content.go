package recall

import (
	"context"
	"sort"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/retry"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

// 内容分的打分权重。频次项来自画像，互动项来自目录，新鲜度 30 天线性衰减。
const (
	categoryWeight  = 0.3
	destWeight      = 0.25
	tagWeight       = 0.1
	likeWeight      = 0.01
	commentWeight   = 0.02
	viewWeight      = 0.001
	freshnessWeight = 0.02
	freshnessDays   = 30
)

// 候选筛选的偏好截断
const (
	topCategories   = 5
	topDestinations = 5
	topTagCount     = 10
)

// ContentRecall 是基于内容的召回源。
//
// 核心思想："用户偏好某些类别/目的地/标签，推荐具有相同特征的物品"。
// 候选 = 类别命中 Top5 ∪ 目的地命中 Top5 ∪ 标签命中 Top10。
// 不在这里对已看过的物品去重，批内去重由融合层负责。
type ContentRecall struct {
	Catalog core.Catalog

	// TopK 返回的候选上限，<=0 时取 50
	TopK int

	// Now 便于测试注入时钟，为空时取 time.Now
	Now func() time.Time
}

func (r *ContentRecall) Name() string { return "recall.content" }

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || rctx == nil || rctx.Profile.IsEmpty() {
		return nil, nil
	}
	p := rctx.Profile

	q := core.CandidateQuery{
		Categories:   p.TopCategories(topCategories),
		Destinations: p.TopDestinations(topDestinations),
		Tags:         p.TopTags(topTagCount),
	}

	var candidates []core.CatalogItem
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		candidates, inner = r.Catalog.Candidates(ctx, q)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUpstreamUnavail,
			"catalog unavailable: "+err.Error())
	}

	return r.score(candidates, p.CategoryFreq, p.DestinationFreq, p.TagFreq, core.ItemRef{}), nil
}

// Similar 是单物品锚定的相似推荐（GetSimilarItems 的实现）：
// 用锚物品的特征构造一个频次为 1 的伪画像，走同一套内容打分，排除锚本身。
func (r *ContentRecall) Similar(ctx context.Context, anchor core.CatalogItem, topK int) ([]*core.Item, error) {
	catFreq := map[string]float64{}
	destFreq := map[string]float64{}
	tagFreq := map[string]float64{}
	if anchor.Category() != "" {
		catFreq[anchor.Category()] = 1
	}
	if anchor.Destination() != "" {
		destFreq[anchor.Destination()] = 1
	}
	for _, tag := range anchor.Tags() {
		tagFreq[tag] = 1
	}

	q := core.CandidateQuery{
		Categories:   keys(catFreq),
		Destinations: keys(destFreq),
		Tags:         keys(tagFreq),
	}

	var candidates []core.CatalogItem
	err := retry.Once(ctx, 0, func(ctx context.Context) error {
		var inner error
		candidates, inner = r.Catalog.Candidates(ctx, q)
		return inner
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUpstreamUnavail,
			"catalog unavailable: "+err.Error())
	}

	items := r.score(candidates, catFreq, destFreq, tagFreq, anchor.Ref())
	if topK > 0 && len(items) > topK {
		items = items[:topK]
	}
	return items, nil
}

// score 对候选集打分、排序、截断。exclude 非零时跳过该物品（锚定场景）。
func (r *ContentRecall) score(
	candidates []core.CatalogItem,
	catFreq, destFreq, tagFreq map[string]float64,
	exclude core.ItemRef,
) []*core.Item {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || c.Ref() == exclude {
			continue
		}

		score := categoryWeight * catFreq[c.Category()]
		score += destWeight * destFreq[c.Destination()]
		for _, tag := range c.Tags() {
			score += tagWeight * tagFreq[tag]
		}

		eng := c.Engagement()
		score += likeWeight * float64(eng.Likes)
		score += commentWeight * float64(eng.Comments)
		score += viewWeight * float64(eng.Views)

		ageDays := now.Sub(c.CreatedAt()).Hours() / 24
		if fresh := freshnessWeight * (freshnessDays - ageDays); fresh > 0 {
			score += fresh
		}

		it := core.NewItem(c.Ref())
		it.Score = score
		it.Meta["created_at"] = c.CreatedAt()
		it.PutLabel("recall_source", utils.Label{Value: string(core.SourceContent), Source: "recall"})
		out = append(out, it)
	}

	// 按分降序；同分时新物品优先
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
	return out
}

func keys(m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
