package rerank

import (
	"context"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个候选。
// 通常放在 rerank.sort 之后，把结果收敛到调用方要求的 limit。
//
// 示例：
//
//	pl := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.QualityNode{Catalog: catalog},
//	        &rerank.SortNode{},
//	        &rerank.TopNNode{N: 5},
//	    },
//	}
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	// N <= 0 时返回所有候选（不截断）；N > len(items) 时返回所有候选
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
