package core

import (
	"context"
	"time"
)

// ActivityRepository 是行为仓库的只读接口，由外围 CRUD 系统实现。
// 所有读取都针对不可变的行为日志。
type ActivityRepository interface {
	// UserEvents 返回某用户的全部行为事件
	UserEvents(ctx context.Context, userID string) ([]ActivityEvent, error)

	// FollowsGiven 返回该用户关注他人的数量（关注图由外围系统维护）
	FollowsGiven(ctx context.Context, userID string) (int, error)

	// RecentActiveUsers 返回最近活跃的用户 ID（不含排序要求外的语义），
	// 协同召回用它构造有界的邻居候选池
	RecentActiveUsers(ctx context.Context, limit int) ([]string, error)
}

// CandidateQuery 是内容召回的候选筛选条件，三组条件取并集。
type CandidateQuery struct {
	Categories   []string
	Destinations []string
	Tags         []string
}

// Catalog 是内容/套餐目录的只读接口。
type Catalog interface {
	// Item 按引用取单个物品，不存在时返回 NOT_FOUND
	Item(ctx context.Context, ref ItemRef) (CatalogItem, error)

	// Candidates 返回命中任一筛选条件的物品
	Candidates(ctx context.Context, q CandidateQuery) ([]CatalogItem, error)

	// CreatedWithin 返回窗口期内创建的物品；itemType 为空表示不限类型
	CreatedWithin(ctx context.Context, window time.Duration, itemType ItemType) ([]CatalogItem, error)
}

// HistoryStore 是推荐历史的存储接口：批次不可变，反馈只追加。
type HistoryStore interface {
	// SaveBatch 持久化一个推荐批次
	SaveBatch(ctx context.Context, batch *RecommendationBatch) error

	// Batch 按 ID 读取批次，不存在时返回 NOT_FOUND
	Batch(ctx context.Context, batchID string) (*RecommendationBatch, error)

	// AppendFeedback 追加一条反馈
	AppendFeedback(ctx context.Context, fb *Feedback) error
}
