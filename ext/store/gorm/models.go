// Package gormstore 把关系库里的商品/订单/收藏表适配成推荐引擎的只读数据接口。
// 表结构对应典型的电商库：products、orders、order_items、favorites。
package gormstore

import "time"

type ProductRow struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;type:text"`
	Category    string    `gorm:"column:category;type:text"`
	Price       float64   `gorm:"column:price;type:numeric"`
	Description string    `gorm:"column:description;type:text"`
	Tags        string    `gorm:"column:tags;type:text"` // 逗号分隔
	Material    string    `gorm:"column:material;type:text"`
	Brand       string    `gorm:"column:brand;type:text"`
	RatingAvg   float64   `gorm:"column:rating_avg;type:numeric"`
	RatingCount int       `gorm:"column:rating_count"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (ProductRow) TableName() string { return "products" }

type OrderRow struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Status    string    `gorm:"column:status;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Items []OrderItemRow `gorm:"foreignKey:OrderID"`
}

func (OrderRow) TableName() string { return "orders" }

type OrderItemRow struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"column:order_id;index"`
	ProductID int64 `gorm:"column:product_id"`
	Quantity  int   `gorm:"column:quantity"`
}

func (OrderItemRow) TableName() string { return "order_items" }

type FavoriteRow struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	ProductID int64     `gorm:"column:product_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (FavoriteRow) TableName() string { return "favorites" }
