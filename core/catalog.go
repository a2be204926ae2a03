package core

import "context"

// Product 是商品目录的只读视图：推荐引擎消费的全部商品属性。
// 文本字段（Description/Tags/Material/Brand/Category）供内容相似度使用；
// RatingAvg/RatingCount 供评分质量调整使用。
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       float64
	Description string
	Tags        string // 逗号分隔
	Material    string
	Brand       string
	RatingAvg   float64 // [0,5]
	RatingCount int
}

// OrderStatus 取值约定：购物车是一个 status 为 "cart" 的未完成订单。
// 交互矩阵与热销统计只统计 status != "cart" 的订单。
const OrderStatusCart = "cart"

// Order 是订单的只读视图。
type Order struct {
	ID     int64
	UserID int64
	Status string
	Items  []OrderItem
}

// OrderItem 是订单行。
type OrderItem struct {
	ProductID int64
	Quantity  int
}

// Completed 判断订单是否已完成（非购物车）。
func (o *Order) Completed() bool {
	return o.Status != OrderStatusCart
}

// CatalogStore 是商品目录的数据接口。
//
// 设计原则：
//   - 定义在领域层，由 store（KV）/ext/store/gorm（Postgres）实现
//   - 读不到数据返回空切片而不是错误——缺数据走降级链路，不是故障
type CatalogStore interface {
	// Products 按 ID 批量获取商品；ids 为 nil 时返回全部商品（按 ID 升序）。
	Products(ctx context.Context, ids []int64) ([]Product, error)

	// ProductsByCategory 获取指定类目下的全部商品（按 ID 升序）。
	ProductsByCategory(ctx context.Context, categories []string) ([]Product, error)
}

// OrderStore 是订单数据接口，为交互矩阵/热销统计提供完整订单集合。
type OrderStore interface {
	// Orders 返回系统内全部订单（含购物车）。
	Orders(ctx context.Context) ([]Order, error)

	// Cart 返回用户当前购物车内的商品 ID；没有购物车时返回 nil。
	Cart(ctx context.Context, userID int64) ([]int64, error)

	// PurchasedProducts 返回用户已完成订单中出现过的商品 ID（去重，升序）。
	PurchasedProducts(ctx context.Context, userID int64) ([]int64, error)
}

// FavoriteStore 是收藏数据接口。
type FavoriteStore interface {
	// Favorites 返回用户当前有效收藏的商品 ID（已移除的不算，升序）。
	Favorites(ctx context.Context, userID int64) ([]int64, error)
}
