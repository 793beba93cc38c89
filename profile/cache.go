package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/metrics"
)

// Source 是画像的计算来源，Builder 实现此接口。
// 测试里用计数的假实现验证 singleflight 性质。
type Source interface {
	Build(ctx context.Context, userID string) (*core.BehaviorProfile, error)
}

// Cache 是画像的读穿缓存。
//
// 两个硬性保证：
//   - 同一用户至多一个在途画像计算：并发请求通过 singleflight 共享结果，
//     协同召回触达的每个邻居画像同样走这条路径
//   - 调用方取消不拖垮在途计算：计算在脱离调用方取消链的 context 上完成
//     并写入缓存，让下一个请求直接命中
//
// 失效由新行为事件写入触发（Invalidate），不做轮询。
type Cache struct {
	src   Source
	store core.Store
	ttl   time.Duration

	group singleflight.Group

	// Metrics 可选，为空时不打点
	Metrics *metrics.Metrics

	Logger zerolog.Logger
}

func NewCache(src Source, store core.Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{src: src, store: store, ttl: ttl}
}

func profileKey(userID string) string { return "profile:" + userID }

// Get 返回缓存画像，未命中时触发（或加入）一次共享计算。
func (c *Cache) Get(ctx context.Context, userID string) (*core.BehaviorProfile, error) {
	if data, err := c.store.Get(ctx, profileKey(userID)); err == nil {
		var p core.BehaviorProfile
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil {
			if c.Metrics != nil {
				c.Metrics.ProfileCacheHits.Inc()
			}
			return &p, nil
		}
		// 缓存损坏按未命中处理，重建覆盖
		c.Logger.Warn().Str("user_id", userID).Msg("corrupt cached profile, rebuilding")
	}
	if c.Metrics != nil {
		c.Metrics.ProfileCacheMisses.Inc()
	}

	ch := c.group.DoChan(userID, func() (any, error) {
		// 脱离调用方的取消链：计算完成后写缓存，服务下一个请求
		bctx := context.WithoutCancel(ctx)
		p, err := c.src.Build(bctx, userID)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(p); err == nil {
			if setErr := c.store.Set(bctx, profileKey(userID), data, int(c.ttl.Seconds())); setErr != nil {
				c.Logger.Warn().Err(setErr).Str("user_id", userID).Msg("profile cache write failed")
			}
		}
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared && c.Metrics != nil {
			c.Metrics.ProfileBuildShared.Inc()
		}
		return res.Val.(*core.BehaviorProfile), nil
	}
}

// Invalidate 删除缓存画像。新 ActivityEvent 写入时由外围系统调用。
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, profileKey(userID))
}

// OnActivity 是行为事件失效消息的入口。
func (c *Cache) OnActivity(ctx context.Context, ev core.ActivityEvent) error {
	return c.Invalidate(ctx, ev.UserID)
}
