package recall

import (
	"context"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/utils"
)

// CategoryFallback 是类目兜底召回源：当系统内没有足够订单数据支撑协同过滤时，
// 返回与种子商品同类目的其他商品。
//
// 边界：
//   - 种子集为空或解析不出任何类目时返回空列表（不是错误）
//   - 种子自身与排除集中的商品永远不会出现在结果中
//   - 结果按商品 ID 升序（CatalogStore 的排序契约），保证确定性
type CategoryFallback struct {
	Catalog core.CatalogStore

	// TopK 返回的候选数量上限；<= 0 时用 rctx.Limit
	TopK int
}

func (r *CategoryFallback) Name() string {
	return "recall.category"
}

func (r *CategoryFallback) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (r *CategoryFallback) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *CategoryFallback) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || rctx == nil || len(rctx.Seeds) == 0 {
		return nil, nil
	}

	seedProducts, err := r.Catalog.Products(ctx, rctx.Seeds)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0, len(seedProducts))
	for _, p := range seedProducts {
		if p.Category == "" {
			continue
		}
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	candidates, err := r.Catalog.ProductsByCategory(ctx, categories)
	if err != nil {
		return nil, err
	}

	seedSet := make(map[int64]struct{}, len(rctx.Seeds))
	for _, s := range rctx.Seeds {
		seedSet[s] = struct{}{}
	}

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.Limit
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, p := range candidates {
		if _, isSeed := seedSet[p.ID]; isSeed {
			continue
		}
		if rctx.Excluded(p.ID) {
			continue
		}
		it := core.NewItem(p.ID)
		it.Meta["category"] = p.Category
		it.PutLabel("recall_source", utils.Label{Value: "category", Source: "recall"})
		out = append(out, it)
		if topK > 0 && len(out) >= topK {
			break
		}
	}
	return out, nil
}
