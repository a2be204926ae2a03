package filter

import (
	"context"

	"github.com/shopkit/recommend/core"
)

// ExcludeFilter 剔除明确不允许推荐的商品：请求级排除集（购物车内容、已购商品）
// 加上一份静态 ID 列表。召回源在累加阶段已经跳过了排除集，这一层是链路末端的
// 收口，保证任何召回源的实现疏漏都不会泄漏被排除的商品。
type ExcludeFilter struct {
	// IDs 是静态排除列表（下架、违规商品等）
	IDs []int64
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx.Excluded(item.ID) {
		return true, nil
	}
	for _, id := range f.IDs {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
