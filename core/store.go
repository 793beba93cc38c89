package core

import "context"

// Store 是存储的领域接口。
//
// 接口定义在领域层（core），由基础设施层（store）实现，
// 避免领域层依赖具体存储后端。
//
// 使用场景：
//   - 画像缓存（TTL 读穿缓存）
//   - 推荐批次与反馈的历史存储
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位秒，省略或 0 表示不过期
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持更丰富的 KV 操作。
//
//   - 有序集合：活跃用户池（按最近活跃时间取 TopN）、趋势榜
//   - 列表：只追加的反馈流水
//
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员，[start, stop] 闭区间
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// LPush 向列表头部追加一条记录（只追加场景）
	LPush(ctx context.Context, key string, value []byte) error

	// LRange 读取列表区间，[start, stop] 闭区间
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)
}
