// Package metrics 定义推荐引擎的 Prometheus 指标。
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics 聚合引擎侧的全部指标，通过 New 注册到给定 Registerer。
type Metrics struct {
	// GenerateDuration 一次个性化推荐的端到端耗时
	GenerateDuration prometheus.Histogram

	// RecallItems 各召回源产出的候选数
	RecallItems *prometheus.CounterVec

	// ProfileCacheHits / ProfileCacheMisses 画像缓存命中统计
	ProfileCacheHits   prometheus.Counter
	ProfileCacheMisses prometheus.Counter

	// ProfileBuildShared 被 singleflight 合并、未触发独立计算的画像请求数
	ProfileBuildShared prometheus.Counter

	// PeerSkipped 协同召回中因单邻居失败而跳过的次数
	PeerSkipped prometheus.Counter

	// FeedbackTotal 收到的反馈条数
	FeedbackTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "travelrec",
			Name:      "generate_duration_seconds",
			Help:      "End-to-end latency of GeneratePersonalized.",
			Buckets:   prometheus.DefBuckets,
		}),
		RecallItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "recall_items_total",
			Help:      "Candidate items produced per recall source.",
		}, []string{"source"}),
		ProfileCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "profile_cache_hits_total",
			Help:      "Behavior profile cache hits.",
		}),
		ProfileCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "profile_cache_misses_total",
			Help:      "Behavior profile cache misses.",
		}),
		ProfileBuildShared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "profile_build_shared_total",
			Help:      "Profile requests coalesced into an in-flight build.",
		}),
		PeerSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "peer_skipped_total",
			Help:      "Peers dropped from collaborative filtering due to errors.",
		}),
		FeedbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrec",
			Name:      "feedback_total",
			Help:      "Feedback records accepted.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.GenerateDuration,
			m.RecallItems,
			m.ProfileCacheHits,
			m.ProfileCacheMisses,
			m.ProfileBuildShared,
			m.PeerSkipped,
			m.FeedbackTotal,
		)
	}
	return m
}
