// Package travelrec 是旅行社区的个性化推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Fusion → Filter → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，推荐 reason 由此而来
// - 画像即上下文: BehaviorProfile 经 singleflight 缓存，被所有召回源共享
// - 失败降级: 单源/单邻居失败只缩小结果集，冷启动降级为纯趋势
package travelrec

import "github.com/vijeth06/Travel-blog--sub001/pipeline"

// 轻量 facade：便于直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindFusion = pipeline.KindFusion
	KindReRank = pipeline.KindReRank
)
