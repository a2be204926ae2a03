package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shopkit/recommend/core"
)

// KV 存储里各类数据的哈希键。
const (
	productHashKey  = "rec:products"  // field = 商品 ID，value = JSON Product
	orderHashKey    = "rec:orders"    // field = 订单 ID，value = JSON Order
	favoriteHashKey = "rec:favorites" // field = 用户 ID，value = JSON []int64
)

// KVCatalog 把 core.KeyValueStore 适配成商品目录，商品以 JSON 存在哈希里。
// 推荐链路只读，写入由导入任务通过 SaveProduct 完成。
type KVCatalog struct {
	KV core.KeyValueStore
}

var _ core.CatalogStore = (*KVCatalog)(nil)

func NewKVCatalog(kv core.KeyValueStore) *KVCatalog {
	return &KVCatalog{KV: kv}
}

// SaveProduct 写入或覆盖一个商品。
func (c *KVCatalog) SaveProduct(ctx context.Context, p core.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.KV.HSet(ctx, productHashKey, strconv.FormatInt(p.ID, 10), data)
}

// Products 返回指定 ID 的商品；ids 为 nil 时返回全部商品，按 ID 升序。
// 不存在的 ID 直接跳过，不报错。
func (c *KVCatalog) Products(ctx context.Context, ids []int64) ([]core.Product, error) {
	if ids == nil {
		return c.allProducts(ctx)
	}
	products := make([]core.Product, 0, len(ids))
	for _, id := range ids {
		data, err := c.KV.HGet(ctx, productHashKey, strconv.FormatInt(id, 10))
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ProductsByCategory 返回属于任一给定类目的全部商品，按 ID 升序。
func (c *KVCatalog) ProductsByCategory(ctx context.Context, categories []string) ([]core.Product, error) {
	if len(categories) == 0 {
		return []core.Product{}, nil
	}
	wanted := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		wanted[cat] = struct{}{}
	}

	all, err := c.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Product, 0, len(all))
	for _, p := range all {
		if _, ok := wanted[p.Category]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *KVCatalog) allProducts(ctx context.Context) ([]core.Product, error) {
	fields, err := c.KV.HGetAll(ctx, productHashKey)
	if err != nil {
		return nil, err
	}
	products := make([]core.Product, 0, len(fields))
	for _, data := range fields {
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// KVOrders 把 core.KeyValueStore 适配成订单存储。
type KVOrders struct {
	KV core.KeyValueStore
}

var _ core.OrderStore = (*KVOrders)(nil)

func NewKVOrders(kv core.KeyValueStore) *KVOrders {
	return &KVOrders{KV: kv}
}

// SaveOrder 写入或覆盖一个订单。
func (o *KVOrders) SaveOrder(ctx context.Context, order core.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return o.KV.HSet(ctx, orderHashKey, strconv.FormatInt(order.ID, 10), data)
}

// Orders 返回全部订单（含购物车状态），按订单 ID 升序。
func (o *KVOrders) Orders(ctx context.Context) ([]core.Order, error) {
	fields, err := o.KV.HGetAll(ctx, orderHashKey)
	if err != nil {
		return nil, err
	}
	orders := make([]core.Order, 0, len(fields))
	for _, data := range fields {
		var ord core.Order
		if err := json.Unmarshal(data, &ord); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// Cart 返回用户购物车里的商品 ID，保持加入顺序（按订单 ID、行序）。
func (o *KVOrders) Cart(ctx context.Context, userID int64) ([]int64, error) {
	orders, err := o.Orders(ctx)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, ord := range orders {
		if ord.UserID != userID || ord.Status != core.OrderStatusCart {
			continue
		}
		for _, item := range ord.Items {
			ids = append(ids, item.ProductID)
		}
	}
	return ids, nil
}

// PurchasedProducts 返回用户已完成订单中的去重商品 ID，按 ID 升序。
func (o *KVOrders) PurchasedProducts(ctx context.Context, userID int64) ([]int64, error) {
	orders, err := o.Orders(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{})
	for _, ord := range orders {
		if ord.UserID != userID || !ord.Completed() {
			continue
		}
		for _, item := range ord.Items {
			seen[item.ProductID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// KVFavorites 把 core.KeyValueStore 适配成收藏存储，
// 每个用户的收藏列表是一条 JSON 数组。
type KVFavorites struct {
	KV core.KeyValueStore
}

var _ core.FavoriteStore = (*KVFavorites)(nil)

func NewKVFavorites(kv core.KeyValueStore) *KVFavorites {
	return &KVFavorites{KV: kv}
}

// SaveFavorites 覆盖用户的收藏列表。
func (f *KVFavorites) SaveFavorites(ctx context.Context, userID int64, productIDs []int64) error {
	data, err := json.Marshal(productIDs)
	if err != nil {
		return err
	}
	return f.KV.HSet(ctx, favoriteHashKey, strconv.FormatInt(userID, 10), data)
}

// Favorites 返回用户收藏的商品 ID，保持写入时的顺序；没有记录时返回空列表。
func (f *KVFavorites) Favorites(ctx context.Context, userID int64) ([]int64, error) {
	data, err := f.KV.HGet(ctx, favoriteHashKey, strconv.FormatInt(userID, 10))
	if core.IsStoreNotFound(err) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
