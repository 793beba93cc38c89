package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// HistoryAdapter 把 KeyValueStore 适配为 core.HistoryStore：
// 批次按 key 整体存 JSON（不可变），反馈以 LPush 追加到批次维度的流水。
type HistoryAdapter struct {
	Store core.KeyValueStore

	// KeyPrefix 默认 "rec"
	KeyPrefix string
}

var _ core.HistoryStore = (*HistoryAdapter)(nil)

func NewHistoryAdapter(s core.KeyValueStore) *HistoryAdapter {
	return &HistoryAdapter{Store: s, KeyPrefix: "rec"}
}

func (a *HistoryAdapter) prefix() string {
	if a.KeyPrefix == "" {
		return "rec"
	}
	return a.KeyPrefix
}

func (a *HistoryAdapter) batchKey(id string) string    { return a.prefix() + ":batch:" + id }
func (a *HistoryAdapter) feedbackKey(id string) string { return a.prefix() + ":feedback:" + id }

func (a *HistoryAdapter) SaveBatch(ctx context.Context, batch *RecBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	return a.Store.Set(ctx, a.batchKey(batch.BatchID), data)
}

func (a *HistoryAdapter) Batch(ctx context.Context, batchID string) (*RecBatch, error) {
	data, err := a.Store.Get(ctx, a.batchKey(batchID))
	if core.IsStoreNotFound(err) {
		return nil, core.NewDomainError(core.ModuleHistory, core.ErrorCodeNotFound,
			"history: batch not found: "+batchID)
	}
	if err != nil {
		return nil, err
	}
	var batch RecBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("unmarshal batch: %w", err)
	}
	return &batch, nil
}

func (a *HistoryAdapter) AppendFeedback(ctx context.Context, fb *core.Feedback) error {
	data, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	return a.Store.LPush(ctx, a.feedbackKey(fb.BatchID), data)
}

// Feedbacks 读取某批次的全部反馈（核心链路不消费，留作扩展点/排障）。
func (a *HistoryAdapter) Feedbacks(ctx context.Context, batchID string) ([]core.Feedback, error) {
	rows, err := a.Store.LRange(ctx, a.feedbackKey(batchID), 0, -1)
	if err != nil {
		return nil, err
	}
	out := make([]core.Feedback, 0, len(rows))
	for _, row := range rows {
		var fb core.Feedback
		if err := json.Unmarshal(row, &fb); err != nil {
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

// RecBatch 别名，仅为缩短方法签名。
type RecBatch = core.RecommendationBatch
