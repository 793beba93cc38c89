package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/conv"
	"github.com/vijeth06/Travel-blog--sub001/pkg/retry"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
	"github.com/vijeth06/Travel-blog--sub001/recall"
)

// GenerateRequest 是一次个性化推荐请求。
type GenerateRequest struct {
	UserID string

	// Limit 返回条数。0 表示未指定、取配置的 DefaultLimit；负数是非法参数
	Limit int

	// Type 非空时只返回该类型（在融合之后过滤）
	Type core.ItemType
}

// resolveLimit 校验并补全 limit：负数是非法参数，0 视为未指定。
func (e *Engine) resolveLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: limit must be positive")
	}
	if limit == 0 {
		return e.cfg.DefaultLimit, nil
	}
	return limit, nil
}

// GeneratePersonalized 生成个性化推荐批次。
//
// 流程：画像（缓存/singleflight）→ 三路召回并发 → 融合去重 → 类型过滤 → 截断。
// 冷启动用户（空画像）自然降级为纯趋势推荐，置信度为 0。
// 批次落历史存储后发布 recommendation.generated 事件；事件失败只记日志。
func (e *Engine) GeneratePersonalized(ctx context.Context, req GenerateRequest) (*core.RecommendationBatch, error) {
	if req.UserID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: user id is required")
	}
	if !core.ValidItemType(req.Type) {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: unknown item type: "+string(req.Type))
	}
	limit, err := e.resolveLimit(req.Limit)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		timer := prometheus.NewTimer(e.metrics.GenerateDuration)
		defer timer.ObserveDuration()
	}

	p, err := e.profiles.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID:     req.UserID,
		Scene:      "personalized",
		Profile:    p,
		Limit:      limit,
		FilterType: req.Type,
	}
	items, err := e.pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	batch := &core.RecommendationBatch{
		BatchID:           uuid.NewString(),
		UserID:            req.UserID,
		Recommendations:   toRecommendations(items),
		Confidence:        confidence(p),
		ProfileSnapshotID: p.SnapshotID,
		GeneratedAt:       e.now(),
	}

	if err := e.history.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}
	if err := e.events.RecommendationGenerated(batch); err != nil {
		e.logger.Warn().Err(err).Str("batch_id", batch.BatchID).Msg("publish recommendation event failed")
	}
	return batch, nil
}

// GetSimilarItems 返回与锚物品相似的推荐。锚不存在时返回 NOT_FOUND。
func (e *Engine) GetSimilarItems(ctx context.Context, ref core.ItemRef, limit int) ([]core.Recommendation, error) {
	if ref.ID == "" || !core.ValidItemType(ref.Type) || ref.Type == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: invalid item reference")
	}
	limit, err := e.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	var anchor core.CatalogItem
	var lookupErr error
	err = retry.Once(ctx, 0, func(ctx context.Context) error {
		anchor, lookupErr = e.catalog.Item(ctx, ref)
		if core.IsNotFound(lookupErr) {
			// 确定性的客户端错误不重试
			return nil
		}
		return lookupErr
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUpstreamUnavail,
			"catalog unavailable: "+err.Error())
	}
	if lookupErr != nil {
		return nil, lookupErr
	}

	items, err := e.content.Similar(ctx, anchor, limit)
	if err != nil {
		return nil, err
	}
	return toRecommendations(items), nil
}

// GetTrending 返回窗口期内的趋势物品，与用户画像无关。
// timeframe 取 1d / 7d / 30d / 90d，其余值返回 INVALID_ARGUMENT。
// itemType 取 content / package / all，"all" 与空串等价（不限类型）。
func (e *Engine) GetTrending(ctx context.Context, timeframe string, itemType core.ItemType, limit int) ([]core.Recommendation, error) {
	window, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	if itemType == "all" {
		itemType = ""
	}
	if !core.ValidItemType(itemType) {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: unknown item type: "+string(itemType))
	}
	limit, err = e.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	r := &recall.TrendingRecall{
		Catalog: e.catalog,
		Window:  window,
		Type:    itemType,
		TopK:    limit,
		Now:     e.now,
	}
	items, err := r.Recall(ctx, &core.RecommendContext{Scene: "trending", Limit: limit})
	if err != nil {
		return nil, err
	}
	return toRecommendations(items), nil
}

// ParseTimeframe 把窗口标识解析为时长。
func ParseTimeframe(timeframe string) (time.Duration, error) {
	switch timeframe {
	case "1d":
		return 24 * time.Hour, nil
	case "7d":
		return 7 * 24 * time.Hour, nil
	case "30d":
		return 30 * 24 * time.Hour, nil
	case "90d":
		return 90 * 24 * time.Hour, nil
	default:
		return 0, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: unknown timeframe: "+timeframe)
	}
}

// confidence = min(100, 5 × 画像信号数)。空画像为 0。
func confidence(p *core.BehaviorProfile) float64 {
	c := 5 * float64(p.DataPoints())
	if c > 100 {
		return 100
	}
	return c
}

// toRecommendations 把 Pipeline 产出转为对外的推荐列表。
// Source 取 recall_source 标签的第一个值（融合后即最高分实例的来源），
// Reason 累积全部贡献来源。
func toRecommendations(items []*core.Item) []core.Recommendation {
	return conv.ConvertSlice(items, func(it *core.Item) (core.Recommendation, bool) {
		if it == nil {
			return core.Recommendation{}, false
		}
		rec := core.Recommendation{Item: it.Ref, Score: it.Score}
		if lbl, ok := it.Labels["recall_source"]; ok {
			sources := utils.SplitValues(lbl)
			if len(sources) > 0 {
				rec.Source = core.RecSource(sources[0])
				rec.Reason = "recalled by " + strings.Join(sources, ",")
			}
		}
		return rec, true
	})
}
