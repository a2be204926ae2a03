package rerank

import (
	"context"
	"sort"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
)

// SortNode 按分数降序稳定排序。质量调整（rank.quality）改变分数之后必须重排，
// 稳定性保证并列分数的候选保持进入时的先后顺序。
type SortNode struct{}

func (n *SortNode) Name() string {
	return "rerank.sort"
}

func (n *SortNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}
