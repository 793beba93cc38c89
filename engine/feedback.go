package engine

import (
	"context"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/search"
)

// RecordFeedback 记录对某批次中某物品的反馈。
//
// 校验：rating ∈ [1,5]；批次存在；物品属于该批次。
// 反馈只追加，不回写召回链路；落库后发布 feedback.recorded 事件。
func (e *Engine) RecordFeedback(ctx context.Context, fb core.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: rating must be between 1 and 5")
	}
	if fb.BatchID == "" {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: batch id is required")
	}

	batch, err := e.history.Batch(ctx, fb.BatchID)
	if err != nil {
		return err
	}
	if !batch.Contains(fb.Item) {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: item does not belong to batch "+fb.BatchID)
	}

	if fb.SubmittedAt.IsZero() {
		fb.SubmittedAt = e.now()
	}
	if err := e.history.AppendFeedback(ctx, &fb); err != nil {
		return err
	}

	if e.metrics != nil {
		e.metrics.FeedbackTotal.Inc()
	}
	if err := e.events.FeedbackRecorded(&fb); err != nil {
		e.logger.Warn().Err(err).Str("batch_id", fb.BatchID).Msg("publish feedback event failed")
	}
	return nil
}

// ClassifySearch 对搜索查询做意图分类并返回建议。
func (e *Engine) ClassifySearch(ctx context.Context, query string, limit int) (*search.Result, error) {
	limit, err := e.resolveLimit(limit)
	if err != nil {
		return nil, err
	}
	return e.classifier.Classify(ctx, query, limit)
}
