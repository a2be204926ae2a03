package recall

import (
	"context"
	"sort"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/utils"
)

// Trending 是热销召回源：按已完成订单（status != "cart"）的总销量降序排列商品，
// 是新用户冷启动时的终极兜底。
//
// 排序契约：总销量降序，销量相同按商品 ID 升序。热销商品不足 TopK 时，
// 用目录中尚未出现的其他商品（按 ID 升序）补齐。
type Trending struct {
	Orders  core.OrderStore
	Catalog core.CatalogStore

	// TopK 返回的候选数量上限；<= 0 时用 rctx.Limit
	TopK int
}

func (r *Trending) Name() string {
	return "recall.trending"
}

func (r *Trending) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (r *Trending) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Trending) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Orders == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 && rctx != nil {
		topK = rctx.Limit
	}

	orders, err := r.Orders.Orders(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]float64)
	for _, o := range orders {
		if !o.Completed() {
			continue
		}
		for _, item := range o.Items {
			if item.Quantity > 0 {
				totals[item.ProductID] += float64(item.Quantity)
			}
		}
	}

	ranked := make([]int64, 0, len(totals))
	for id := range totals {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]*core.Item, 0, topK)
	for _, id := range ranked {
		it := core.NewItem(id)
		it.Score = totals[id]
		it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
		out = append(out, it)
	}

	// 热销不足时用目录剩余商品补齐
	if topK > 0 && len(out) < topK && r.Catalog != nil {
		included := make(map[int64]struct{}, len(out))
		for _, it := range out {
			included[it.ID] = struct{}{}
		}
		products, err := r.Catalog.Products(ctx, nil)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if len(out) >= topK {
				break
			}
			if _, dup := included[p.ID]; dup {
				continue
			}
			it := core.NewItem(p.ID)
			it.PutLabel("recall_source", utils.Label{Value: "trending_pad", Source: "recall"})
			out = append(out, it)
		}
	}
	return out, nil
}
