package core

import "time"

// RecSource 标记一条推荐来自哪个策略。
type RecSource string

const (
	SourceContent       RecSource = "content"
	SourceCollaborative RecSource = "collaborative"
	SourceTrending      RecSource = "trending"
)

// Recommendation 是融合后的一条推荐。
// Reason 由各召回源的 recall_source 标签合并而来，用于解释。
type Recommendation struct {
	Item   ItemRef   `json:"item"`
	Source RecSource `json:"source"`
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
}

// RecommendationBatch 是一次个性化推荐的完整产出，创建后不可变。
type RecommendationBatch struct {
	BatchID           string           `json:"batch_id"`
	UserID            string           `json:"user_id"`
	Recommendations   []Recommendation `json:"recommendations"` // 已排序、已去重
	Confidence        float64          `json:"confidence"`      // [0,100]
	ProfileSnapshotID string           `json:"profile_snapshot_id"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Contains 判断批次中是否包含某个物品，用于反馈校验。
func (b *RecommendationBatch) Contains(ref ItemRef) bool {
	if b == nil {
		return false
	}
	for _, r := range b.Recommendations {
		if r.Item == ref {
			return true
		}
	}
	return false
}

// Feedback 是对某一批次中某个物品的用户反馈，只追加，核心链路不消费。
type Feedback struct {
	BatchID     string    `json:"batch_id"`
	Item        ItemRef   `json:"item"`
	Rating      int       `json:"rating"` // 1-5
	Helpful     bool      `json:"helpful"`
	Reason      string    `json:"reason,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
