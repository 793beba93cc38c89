// Package events 把推荐核心的产出以领域事件发布出去。
// 实时通知的扇出由外部网关订阅这些事件完成，核心不持有任何推送通道。
package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// 事件主题
const (
	TopicRecommendationGenerated = "recommendation.generated"
	TopicFeedbackRecorded        = "feedback.recorded"
)

// RecommendationGenerated 是一次推荐批次落地后的事件载荷。
// 只带引用与概要，完整批次在历史存储里。
type RecommendationGenerated struct {
	BatchID     string    `json:"batch_id"`
	UserID      string    `json:"user_id"`
	ItemCount   int       `json:"item_count"`
	Confidence  float64   `json:"confidence"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FeedbackRecorded 是反馈被接受后的事件载荷。
type FeedbackRecorded struct {
	BatchID     string       `json:"batch_id"`
	Item        core.ItemRef `json:"item"`
	Rating      int          `json:"rating"`
	Helpful     bool         `json:"helpful"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// Publisher 包装 watermill 的 message.Publisher。
// Pub 为 nil 时所有发布都是 no-op，核心功能不依赖事件链路可用。
type Publisher struct {
	Pub message.Publisher
}

func (p *Publisher) publish(topic string, payload any) error {
	if p == nil || p.Pub == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.Pub.Publish(topic, message.NewMessage(uuid.NewString(), data))
}

// RecommendationGenerated 发布批次生成事件。
func (p *Publisher) RecommendationGenerated(batch *core.RecommendationBatch) error {
	return p.publish(TopicRecommendationGenerated, RecommendationGenerated{
		BatchID:     batch.BatchID,
		UserID:      batch.UserID,
		ItemCount:   len(batch.Recommendations),
		Confidence:  batch.Confidence,
		GeneratedAt: batch.GeneratedAt,
	})
}

// FeedbackRecorded 发布反馈事件。
func (p *Publisher) FeedbackRecorded(fb *core.Feedback) error {
	return p.publish(TopicFeedbackRecorded, FeedbackRecorded{
		BatchID:     fb.BatchID,
		Item:        fb.Item,
		Rating:      fb.Rating,
		Helpful:     fb.Helpful,
		SubmittedAt: fb.SubmittedAt,
	})
}
