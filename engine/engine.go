// Package engine 是推荐编排层：按数据可用性在三种策略之间做一次性决策
// （混合召回 / 类目兜底 / 热销冷启动），把召回、过滤、质量调整、重排
// 装配成 Pipeline 执行，并把结果收敛到调用方要求的数量。
//
// 契约："推不出来"不是错误——任何入口在数据缺失时都返回空列表并降级，
// 错误只来自底层存储故障。
package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/filter"
	"github.com/shopkit/recommend/matrix"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/rank"
	"github.com/shopkit/recommend/recall"
	"github.com/shopkit/recommend/rerank"
	"github.com/shopkit/recommend/similarity"
)

// 各入口的默认返回数量。
const (
	DefaultCartLimit         = 5
	DefaultPersonalizedLimit = 8
	DefaultTrendingLimit     = 8
)

// 策略标识，用于观测与日志。
const (
	strategyHybrid        = "hybrid"
	strategyBlend         = "blend"
	strategyCollaborative = "collaborative"
	strategyFavorites     = "favorites"
	strategyFallback      = "fallback"
	strategyTrending      = "trending"
	strategyEmpty         = "empty"
)

// Engine 是推荐引擎的入口。所有依赖显式注入：没有全局会话，
// 每个请求只通过传入的 context 与这些只读接口触达数据。
type Engine struct {
	Catalog   core.CatalogStore
	Orders    core.OrderStore
	Favorites core.FavoriteStore

	// Filters 是应用到所有策略候选上的业务过滤器（缺货规则、静态黑名单等），
	// 可以为空。排除集的收口过滤始终存在，不依赖这里。
	Filters []filter.Filter
}

// New 创建推荐引擎。
func New(catalog core.CatalogStore, orders core.OrderStore, favorites core.FavoriteStore) *Engine {
	return &Engine{
		Catalog:   catalog,
		Orders:    orders,
		Favorites: favorites,
	}
}

// CartRecommendations 为用户当前购物车推荐商品，返回有序的商品 ID 列表。
//
// 决策树：
//  1. 没有购物车或购物车为空 → 空列表
//  2. 系统内没有任何已完成订单（交互矩阵为空）→ 类目兜底
//  3. 混合召回（协同 + 内容，0.6/0.4），候选上限 2×limit 以便后置过滤
//  4. 混合结果不足 limit → 与类目兜底混排：协同在前、兜底补位，截断到 limit
func (e *Engine) CartRecommendations(ctx context.Context, userID int64, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = DefaultCartLimit
	}
	start := time.Now()
	defer func() { cartLatency.Observe(time.Since(start).Seconds()) }()

	var (
		cart      []int64
		allOrders []core.Order
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		cart, err = e.Orders.Cart(egCtx, userID)
		return err
	})
	eg.Go(func() (err error) {
		allOrders, err = e.Orders.Orders(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(cart) == 0 {
		slog.Debug("cart recommendations: no cart", "user_id", userID)
		cartRequests.WithLabelValues(strategyEmpty).Inc()
		return []int64{}, nil
	}

	rctx := &core.RecommendContext{
		UserID:  userID,
		Scene:   "cart",
		Seeds:   cart,
		Exclude: idSet(cart),
		Limit:   limit,
	}

	interactions := matrix.BuildFromOrders(allOrders)
	if interactions.Empty() {
		// 全系统都没有订单历史，协同信号不存在：直接类目兜底
		slog.Debug("cart recommendations: empty interaction matrix, falling back",
			"user_id", userID)
		cartRequests.WithLabelValues(strategyFallback).Inc()
		return e.categoryFallback(ctx, rctx, limit)
	}

	collaborative := similarity.FromInteractions(interactions)
	content, err := similarity.FromCatalog(ctx, e.Catalog, nil)
	if err != nil {
		return nil, err
	}

	// 请求 2×limit 个候选，留出过滤空间
	found, err := e.runPipeline(ctx, rctx, &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Hybrid{Collaborative: collaborative, Content: content},
			e.filterNode(),
			&rank.QualityNode{Catalog: e.Catalog},
			&rerank.SortNode{},
			&rerank.TopNNode{N: 2 * limit},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(found) > limit {
		found = found[:limit]
	}

	if len(found) >= limit {
		cartRequests.WithLabelValues(strategyHybrid).Inc()
		return found, nil
	}

	// Blend 子状态：协同结果不足，用类目兜底补位。
	// 兜底的排除集是购物车 ∪ 已找到的协同候选，保证拼接后无重复。
	slog.Debug("cart recommendations: blending with category fallback",
		"user_id", userID, "hybrid_count", len(found))
	blendCtx := &core.RecommendContext{
		UserID:  userID,
		Scene:   "cart",
		Seeds:   cart,
		Exclude: idSet(append(append([]int64{}, cart...), found...)),
		Limit:   limit,
	}
	padding, err := e.categoryFallback(ctx, blendCtx, limit-len(found))
	if err != nil {
		return nil, err
	}
	cartRequests.WithLabelValues(strategyBlend).Inc()

	combined := append(found, padding...)
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined, nil
}

// PersonalizedRecommendations 为首页"为你推荐"生成商品 ID 列表。
//
// 策略阶梯：
//  1. 有购买历史：纯协同召回，种子 = 已购 ∪ 收藏，排除已购
//  2. 只有收藏：收藏类目下的商品，排除收藏自身
//  3. 全新用户：热销商品
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID int64, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = DefaultPersonalizedLimit
	}
	start := time.Now()
	defer func() { personalizedLatency.Observe(time.Since(start).Seconds()) }()

	var (
		purchased []int64
		favorites []int64
		allOrders []core.Order
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		purchased, err = e.Orders.PurchasedProducts(egCtx, userID)
		return err
	})
	eg.Go(func() (err error) {
		allOrders, err = e.Orders.Orders(egCtx)
		return err
	})
	if e.Favorites != nil {
		eg.Go(func() (err error) {
			favorites, err = e.Favorites.Favorites(egCtx, userID)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 策略 1：有购买历史，走纯协同
	if len(purchased) > 0 {
		interactions := matrix.BuildFromOrders(allOrders)
		if !interactions.Empty() {
			collaborative := similarity.FromInteractions(interactions)

			// 种子 = 已购 ∪ 收藏（去重，保持已购在前的顺序）
			seeds := append([]int64{}, purchased...)
			purchasedSet := idSet(purchased)
			for _, f := range favorites {
				if _, dup := purchasedSet[f]; !dup {
					seeds = append(seeds, f)
				}
			}

			rctx := &core.RecommendContext{
				UserID:  userID,
				Scene:   "personalized",
				Seeds:   seeds,
				Exclude: idSet(purchased),
				Limit:   limit,
			}
			found, err := e.runPipeline(ctx, rctx, &pipeline.Pipeline{
				Nodes: []pipeline.Node{
					&recall.Hybrid{Collaborative: collaborative, TopK: 2 * limit},
					e.filterNode(),
					&rerank.TopNNode{N: limit},
				},
			})
			if err != nil {
				return nil, err
			}
			if len(found) > 0 {
				personalizedRequests.WithLabelValues(strategyCollaborative).Inc()
				return found, nil
			}
		}
		slog.Debug("personalized recommendations: no collaborative signal",
			"user_id", userID, "purchased", len(purchased))
	}

	// 策略 2：只有收藏，推荐收藏类目下的商品
	if len(favorites) > 0 {
		rctx := &core.RecommendContext{
			UserID:  userID,
			Scene:   "personalized",
			Seeds:   favorites,
			Exclude: idSet(favorites),
			Limit:   limit,
		}
		personalizedRequests.WithLabelValues(strategyFavorites).Inc()
		return e.categoryFallback(ctx, rctx, limit)
	}

	// 策略 3：全新用户冷启动，热销兜底
	slog.Debug("personalized recommendations: cold start, using trending", "user_id", userID)
	personalizedRequests.WithLabelValues(strategyTrending).Inc()
	return e.trending(ctx, userID, limit)
}

// TrendingProducts 返回按销量降序的热销商品 ID 列表，销量不足时用目录补齐。
func (e *Engine) TrendingProducts(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	start := time.Now()
	defer func() { trendingLatency.Observe(time.Since(start).Seconds()) }()

	trendingRequests.Inc()
	return e.trending(ctx, 0, limit)
}

// categoryFallback 执行类目兜底链路并返回商品 ID。
func (e *Engine) categoryFallback(ctx context.Context, rctx *core.RecommendContext, limit int) ([]int64, error) {
	if limit <= 0 {
		return []int64{}, nil
	}
	return e.runPipeline(ctx, rctx, &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.CategoryFallback{Catalog: e.Catalog},
			e.filterNode(),
			&rerank.TopNNode{N: limit},
		},
	})
}

// trending 执行热销链路并返回商品 ID。
func (e *Engine) trending(ctx context.Context, userID int64, limit int) ([]int64, error) {
	rctx := &core.RecommendContext{
		UserID: userID,
		Scene:  "trending",
		Limit:  limit,
	}
	return e.runPipeline(ctx, rctx, &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Trending{Orders: e.Orders, Catalog: e.Catalog, TopK: limit},
			e.filterNode(),
			&rerank.TopNNode{N: limit},
		},
	})
}

// runPipeline 执行一条策略链并提取商品 ID。结果永远是非 nil 的列表。
func (e *Engine) runPipeline(ctx context.Context, rctx *core.RecommendContext, pl *pipeline.Pipeline) ([]int64, error) {
	items, err := pl.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	ids := core.ItemIDs(items)
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// filterNode 组装收口过滤链：排除集过滤始终在最前，业务过滤器随后。
func (e *Engine) filterNode() *filter.FilterNode {
	filters := make([]filter.Filter, 0, len(e.Filters)+1)
	filters = append(filters, &filter.ExcludeFilter{})
	filters = append(filters, e.Filters...)
	return &filter.FilterNode{Filters: filters}
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
