// Package engine 是推荐引擎的装配层与对外门面。
//
// 六个操作：GeneratePersonalized / GetSimilarItems / GetTrending /
// ClassifySearch / RecordFeedback / GetUserInsights。
// 外围系统（HTTP/gRPC 网关）只依赖本包。
package engine

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/vijeth06/Travel-blog--sub001/config"
	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/events"
	"github.com/vijeth06/Travel-blog--sub001/filter"
	"github.com/vijeth06/Travel-blog--sub001/pipeline"
	"github.com/vijeth06/Travel-blog--sub001/pkg/metrics"
	"github.com/vijeth06/Travel-blog--sub001/profile"
	"github.com/vijeth06/Travel-blog--sub001/recall"
	"github.com/vijeth06/Travel-blog--sub001/rerank"
	"github.com/vijeth06/Travel-blog--sub001/search"
	"github.com/vijeth06/Travel-blog--sub001/store"
)

// Deps 是引擎的外部依赖。Activities 与 Catalog 必填，其余可选：
//   - Store 为空时使用内存存储
//   - Vectors 为空时邻居向量走画像缓存（singleflight 路径）
//   - Publisher 为空时事件发布是 no-op
//   - Persona 为空时使用出厂画像人格规则
type Deps struct {
	Activities core.ActivityRepository
	Catalog    core.Catalog

	Store     core.KeyValueStore
	Vectors   recall.Vectors
	Publisher message.Publisher
	Persona   profile.Classifier
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

// Engine 聚合画像、召回、融合与历史存储，对外暴露推荐操作。
type Engine struct {
	cfg *config.Config

	profiles *profile.Cache
	content  *recall.ContentRecall
	pipe     *pipeline.Pipeline

	catalog    core.Catalog
	activities core.ActivityRepository
	history    core.HistoryStore

	classifier *search.Classifier
	events     *events.Publisher

	metrics *metrics.Metrics
	logger  zerolog.Logger

	// now 便于测试注入时钟
	now func() time.Time
}

// New 装配推荐引擎。cfg 为空时取 config.Default()。
func New(cfg *config.Config, deps Deps) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Activities == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: activity repository is required")
	}
	if deps.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidArgument,
			"engine: catalog is required")
	}

	kv := deps.Store
	if kv == nil {
		kv = store.NewMemoryStore()
	}

	builder := &profile.Builder{
		Activities: deps.Activities,
		Persona:    deps.Persona,
		Logger:     deps.Logger,
	}
	profiles := profile.NewCache(builder, kv, time.Duration(cfg.ProfileTTLSeconds)*time.Second)
	profiles.Metrics = deps.Metrics
	profiles.Logger = deps.Logger

	vectors := deps.Vectors
	if vectors == nil {
		vectors = &recall.ProfileVectors{Profiles: profiles}
	}

	content := &recall.ContentRecall{Catalog: deps.Catalog}

	window, err := ParseTimeframe(cfg.TrendingTimeframe)
	if err != nil {
		return nil, err
	}

	fanout := &recall.Fanout{
		Sources: []recall.Source{
			content,
			&recall.CollaborativeRecall{
				Activities:    deps.Activities,
				Vectors:       vectors,
				Catalog:       deps.Catalog,
				PoolSize:      cfg.PeerPoolSize,
				TopPeers:      cfg.TopPeers,
				MinSimilarity: cfg.MinPeerSimilarity,
				MaxConcurrent: cfg.MaxConcurrent,
				Metrics:       deps.Metrics,
				Logger:        deps.Logger,
			},
			&recall.TrendingRecall{Catalog: deps.Catalog, Window: window},
		},
		Timeout:       time.Duration(cfg.RecallTimeoutMS) * time.Millisecond,
		MaxConcurrent: cfg.MaxConcurrent,
		Metrics:       deps.Metrics,
		Logger:        deps.Logger,
	}

	pipe := &pipeline.Pipeline{Nodes: []pipeline.Node{
		fanout,
		&rerank.Fusion{},
		&filter.Node{Filters: []filter.Filter{&filter.TypeFilter{}}},
		&rerank.TopN{},
	}}

	return &Engine{
		cfg:        cfg,
		profiles:   profiles,
		content:    content,
		pipe:       pipe,
		catalog:    deps.Catalog,
		activities: deps.Activities,
		history:    store.NewHistoryAdapter(kv),
		classifier: &search.Classifier{Providers: search.DefaultProviders(), Logger: deps.Logger},
		events:     &events.Publisher{Pub: deps.Publisher},
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        time.Now,
	}, nil
}

// Profiles 暴露画像缓存，供行为事件消费方做失效。
func (e *Engine) Profiles() *profile.Cache { return e.profiles }

// History 暴露推荐历史存储（只读用途）。
func (e *Engine) History() core.HistoryStore { return e.history }
