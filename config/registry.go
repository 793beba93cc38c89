package config

import (
	"github.com/vijeth06/Travel-blog--sub001/filter"
	"github.com/vijeth06/Travel-blog--sub001/pipeline"
	"github.com/vijeth06/Travel-blog--sub001/pkg/conv"
	"github.com/vijeth06/Travel-blog--sub001/rerank"
)

// NewNodeFactory 返回注册了内置 Node 的工厂。
//
// 内置 Node 不依赖外部仓库，可直接由 YAML 配置构建；
// 需要注入仓库/画像的 Node（如 recall.fanout）由装配方通过 extra 追加注册。
func NewNodeFactory(extra map[string]pipeline.NodeBuilder) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("fusion", func(_ map[string]any) (pipeline.Node, error) {
		return &rerank.Fusion{}, nil
	})

	f.Register("filter.type", func(_ map[string]any) (pipeline.Node, error) {
		return &filter.Node{Filters: []filter.Filter{&filter.TypeFilter{}}}, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
	})

	for nodeType, builder := range extra {
		f.Register(nodeType, builder)
	}
	return f
}
