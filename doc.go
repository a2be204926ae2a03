// Package recommend 是电商场景的混合推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 混合召回: 协同过滤（订单共现余弦）与内容相似（TF-IDF）按 0.6/0.4 融合
// - 逐级降级: 数据不足时依次退到类目兜底、热销冷启动，"推不出来"不是错误
// - Labels-first: labels 全链路透传，支持 explain 与观测
package recommend

import "github.com/shopkit/recommend/pipeline"

// 轻量 facade：便于直接 import "recommend" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
