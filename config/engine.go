// Package config 承载两类配置：
//   - 运行时配置（本文件）：defaults → YAML 文件 → 环境变量，前缀 TRAVELREC_
//   - Pipeline 节点图（registry.go）：YAML 节点配置 + 注册表构建
package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config 是推荐引擎的进程配置。
type Config struct {
	// LogLevel 日志级别：debug / info / warn / error
	LogLevel string `koanf:"log_level"`

	// RedisAddr 为空时使用内存存储（开发/测试）
	RedisAddr string `koanf:"redis_addr"`
	RedisDB   int    `koanf:"redis_db"`

	// ProfileTTLSeconds 画像缓存的过期时间
	ProfileTTLSeconds int `koanf:"profile_ttl_seconds"`

	// PeerPoolSize 协同召回的活跃用户池大小
	PeerPoolSize int `koanf:"peer_pool_size"`

	// TopPeers 参与推荐的相似邻居数
	TopPeers int `koanf:"top_peers"`

	// MinPeerSimilarity 邻居准入的余弦相似度阈值
	MinPeerSimilarity float64 `koanf:"min_peer_similarity"`

	// MaxConcurrent 邻居画像拉取与召回 fan-out 的并发上限
	MaxConcurrent int `koanf:"max_concurrent"`

	// DefaultLimit 未指定 limit 时的返回条数
	DefaultLimit int `koanf:"default_limit"`

	// RecallTimeoutMS 单个召回源的超时
	RecallTimeoutMS int `koanf:"recall_timeout_ms"`

	// TrendingTimeframe 个性化流程中趋势源的窗口：1d / 7d / 30d / 90d
	TrendingTimeframe string `koanf:"trending_timeframe"`

	// DebugErrors 为 true 时错误响应携带内部细节
	DebugErrors bool `koanf:"debug_errors"`
}

// Default 返回出厂配置。
func Default() *Config {
	return &Config{
		LogLevel:          "info",
		ProfileTTLSeconds: 900,
		PeerPoolSize:      100,
		TopPeers:          10,
		MinPeerSimilarity: 0.3,
		MaxConcurrent:     8,
		DefaultLimit:      20,
		RecallTimeoutMS:   2000,
		TrendingTimeframe: "7d",
	}
}

// Load 按 defaults → 文件（TRAVELREC_CONFIG 指定）→ 环境变量（TRAVELREC_ 前缀）
// 的优先级组装配置。
func Load(_ context.Context) (*Config, error) {
	cfg := *Default()

	k := koanf.New(".")

	if path := os.Getenv("TRAVELREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// TRAVELREC_PEER_POOL_SIZE -> peer_pool_size
	envProvider := env.Provider("TRAVELREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "travelrec_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DefaultLimit <= 0 {
		return nil, errors.New("default_limit must be positive")
	}
	if cfg.PeerPoolSize <= 0 {
		return nil, errors.New("peer_pool_size must be positive")
	}
	return &cfg, nil
}
