package pipeline

import (
	"context"

	"github.com/shopkit/recommend/core"
)

// Pipeline 是核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 编排层为每种策略装配一条链（召回 → 过滤 → 质量调整 → 排序/截断）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
