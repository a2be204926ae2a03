package gormstore

import (
	"context"
	"sort"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopkit/recommend/core"
)

// Store 基于 gorm 实现 core.CatalogStore / core.OrderStore / core.FavoriteStore。
// 推荐链路只读，不做任何写入。
type Store struct {
	db *gorm.DB
}

var (
	_ core.CatalogStore  = (*Store)(nil)
	_ core.OrderStore    = (*Store)(nil)
	_ core.FavoriteStore = (*Store)(nil)
)

// New 复用调用方已有的 gorm 连接。
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open 用 Postgres DSN 建立连接。
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Products(ctx context.Context, ids []int64) ([]core.Product, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if ids != nil {
		q = q.Where("id IN ?", ids)
	}
	var rows []ProductRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (s *Store) ProductsByCategory(ctx context.Context, categories []string) ([]core.Product, error) {
	if len(categories) == 0 {
		return []core.Product{}, nil
	}
	var rows []ProductRow
	err := s.db.WithContext(ctx).
		Where("category IN ?", categories).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (s *Store) Orders(ctx context.Context) ([]core.Order, error) {
	var rows []OrderRow
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	orders := make([]core.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, toOrder(r))
	}
	return orders, nil
}

func (s *Store) Cart(ctx context.Context, userID int64) ([]int64, error) {
	var rows []OrderRow
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, core.OrderStatusCart).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, r := range rows {
		for _, item := range r.Items {
			ids = append(ids, item.ProductID)
		}
	}
	return ids, nil
}

func (s *Store) PurchasedProducts(ctx context.Context, userID int64) ([]int64, error) {
	var rows []OrderRow
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status <> ?", userID, core.OrderStatusCart).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{})
	for _, r := range rows {
		for _, item := range r.Items {
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

func (s *Store) Favorites(ctx context.Context, userID int64) ([]int64, error) {
	var rows []FavoriteRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	return ids, nil
}

func toProducts(rows []ProductRow) []core.Product {
	products := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, core.Product{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Price:       r.Price,
			Description: r.Description,
			Tags:        r.Tags,
			Material:    r.Material,
			Brand:       r.Brand,
			RatingAvg:   r.RatingAvg,
			RatingCount: r.RatingCount,
		})
	}
	return products
}

func toOrder(r OrderRow) core.Order {
	order := core.Order{
		ID:     r.ID,
		UserID: r.UserID,
		Status: r.Status,
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, core.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return order
}
