// Package retry 提供上游调用的"重试一次 + 退避"策略。
// 行为仓库/目录属于外部协作方，瞬时故障先原地重试一次，仍失败才上抛。
package retry

import (
	"context"
	"time"
)

// DefaultBackoff 是首次失败后的等待时间。
const DefaultBackoff = 100 * time.Millisecond

// Once 执行 fn；失败时等待 backoff 后重试一次，返回最后一次的错误。
// ctx 取消优先于重试。
func Once(ctx context.Context, backoff time.Duration, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
	}
	return fn(ctx)
}
