package core

import "time"

// ActivityKind 是用户行为类型。行为日志是不可变、只追加的。
type ActivityKind string

const (
	ActivityAuthored  ActivityKind = "authored"
	ActivityLiked     ActivityKind = "liked"
	ActivityCommented ActivityKind = "commented"
	ActivityBooked    ActivityKind = "booked"
	ActivityViewed    ActivityKind = "viewed"
)

// ActivityEvent 是一条用户行为记录，画像构建的唯一数据来源。
//
// Amount / DurationDays / GroupSize 仅在 booked 事件上有意义，
// 用于推导旅行模式（预算、时长、出行人数）。
type ActivityEvent struct {
	UserID       string       `json:"user_id"`
	Kind         ActivityKind `json:"kind"`
	Target       ItemRef      `json:"target"`
	Category     string       `json:"category,omitempty"`
	Destination  string       `json:"destination,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Amount       float64      `json:"amount,omitempty"`
	DurationDays int          `json:"duration_days,omitempty"`
	GroupSize    int          `json:"group_size,omitempty"`
	OccurredAt   time.Time    `json:"occurred_at"`
}
