package store

import (
	"context"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// ActiveUsers 用有序集合维护"最近活跃用户"池（score = 最近活跃时间戳）。
// 行为仓库的 RecentActiveUsers 可以委托给它，由行为写入方在落库时 Touch。
type ActiveUsers struct {
	Store core.KeyValueStore

	// Key 默认 "users:active"
	Key string
}

func NewActiveUsers(s core.KeyValueStore) *ActiveUsers {
	return &ActiveUsers{Store: s, Key: "users:active"}
}

func (a *ActiveUsers) key() string {
	if a.Key == "" {
		return "users:active"
	}
	return a.Key
}

// Touch 记录一次用户活跃。
func (a *ActiveUsers) Touch(ctx context.Context, userID string, at time.Time) error {
	return a.Store.ZAdd(ctx, a.key(), float64(at.Unix()), userID)
}

// Recent 返回最近活跃的 limit 个用户，按活跃时间降序。
func (a *ActiveUsers) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	return a.Store.ZRange(ctx, a.key(), 0, int64(limit)-1)
}

// LastSeen 返回用户最近一次活跃时间，从未活跃时返回 NOT_FOUND。
func (a *ActiveUsers) LastSeen(ctx context.Context, userID string) (time.Time, error) {
	score, err := a.Store.ZScore(ctx, a.key(), userID)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(score), 0), nil
}
