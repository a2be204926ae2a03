// Package matrix 提供用户×商品交互矩阵：协同过滤的输入。
//
// 矩阵是稀疏的：只存非零数量，缺失条目语义为 0。所有矩阵都是请求级的，
// 每次推荐请求从当前订单数据重新构建，请求结束即丢弃。
package matrix

import (
	"context"
	"sort"

	"github.com/shopkit/recommend/core"
)

// Interaction 是稀疏的用户×商品数量矩阵。
// 值为用户在全部已完成订单中对该商品购买数量的累加。
type Interaction struct {
	// rows: userID -> productID -> 数量累加
	rows map[int64]map[int64]float64

	// products 记录出现过的商品列（转置为物品向量时需要完整列集合）
	products map[int64]struct{}
}

// NewInteraction 创建一个空矩阵。空矩阵是合法的终态，不是错误。
func NewInteraction() *Interaction {
	return &Interaction{
		rows:     make(map[int64]map[int64]float64),
		products: make(map[int64]struct{}),
	}
}

// Add 累加一条交互。数量 <= 0 的条目不参与（矩阵不允许负数量）。
func (m *Interaction) Add(userID, productID int64, quantity float64) {
	if quantity <= 0 {
		return
	}
	row, ok := m.rows[userID]
	if !ok {
		row = make(map[int64]float64)
		m.rows[userID] = row
	}
	row[productID] += quantity
	m.products[productID] = struct{}{}
}

// Quantity 读取 (user, product) 的数量，缺失条目为 0。
func (m *Interaction) Quantity(userID, productID int64) float64 {
	if m == nil {
		return 0
	}
	return m.rows[userID][productID]
}

// Empty 判断矩阵是否为空。
func (m *Interaction) Empty() bool {
	return m == nil || len(m.rows) == 0
}

// Users 返回全部用户 ID（升序）。
func (m *Interaction) Users() []int64 {
	if m == nil {
		return nil
	}
	out := make([]int64, 0, len(m.rows))
	for u := range m.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Products 返回全部商品 ID（升序）。
func (m *Interaction) Products() []int64 {
	if m == nil {
		return nil
	}
	out := make([]int64, 0, len(m.products))
	for p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ProductVector 返回矩阵转置后商品的行向量：userID -> 数量。
// 不存在的商品返回空向量。
func (m *Interaction) ProductVector(productID int64) map[int64]float64 {
	out := make(map[int64]float64)
	if m == nil {
		return out
	}
	for userID, row := range m.rows {
		if q, ok := row[productID]; ok && q > 0 {
			out[userID] = q
		}
	}
	return out
}

// Equal 按稀疏语义比较两个矩阵（缺失条目视为 0）。
func (m *Interaction) Equal(other *Interaction) bool {
	if m.Empty() && other.Empty() {
		return true
	}
	if m.Empty() != other.Empty() {
		return false
	}
	if len(m.rows) != len(other.rows) {
		return false
	}
	for userID, row := range m.rows {
		otherRow, ok := other.rows[userID]
		if !ok || len(row) != len(otherRow) {
			return false
		}
		for productID, q := range row {
			if otherRow[productID] != q {
				return false
			}
		}
	}
	return true
}

// Build 从订单数据构建交互矩阵。
// 只统计 status != "cart" 的订单；没有任何已完成订单时返回空矩阵（不是错误）。
func Build(ctx context.Context, orders core.OrderStore) (*Interaction, error) {
	all, err := orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return BuildFromOrders(all), nil
}

// BuildFromOrders 是纯函数版本的构建入口，便于测试与离线复算。
func BuildFromOrders(orders []core.Order) *Interaction {
	m := NewInteraction()
	for _, o := range orders {
		if !o.Completed() {
			continue
		}
		for _, item := range o.Items {
			m.Add(o.UserID, item.ProductID, float64(item.Quantity))
		}
	}
	return m
}
