package matrix

import (
	"testing"

	"github.com/shopkit/recommend/core"
)

func TestBuildFromOrders(t *testing.T) {
	orders := []core.Order{
		{ID: 1, UserID: 1, Status: "delivered", Items: []core.OrderItem{
			{ProductID: 101, Quantity: 2},
			{ProductID: 102, Quantity: 1},
		}},
		{ID: 2, UserID: 1, Status: "shipped", Items: []core.OrderItem{
			{ProductID: 101, Quantity: 3},
		}},
		// 购物车订单不参与
		{ID: 3, UserID: 2, Status: core.OrderStatusCart, Items: []core.OrderItem{
			{ProductID: 103, Quantity: 5},
		}},
		{ID: 4, UserID: 2, Status: "delivered", Items: []core.OrderItem{
			{ProductID: 102, Quantity: 4},
		}},
	}

	m := BuildFromOrders(orders)

	// 同商品跨订单累加
	if got := m.Quantity(1, 101); got != 5 {
		t.Errorf("Quantity(1,101) = %v, want 5", got)
	}
	if got := m.Quantity(1, 102); got != 1 {
		t.Errorf("Quantity(1,102) = %v, want 1", got)
	}
	if got := m.Quantity(2, 102); got != 4 {
		t.Errorf("Quantity(2,102) = %v, want 4", got)
	}
	// 购物车里的商品不应出现
	if got := m.Quantity(2, 103); got != 0 {
		t.Errorf("Quantity(2,103) = %v, want 0（购物车不计入）", got)
	}

	wantProducts := []int64{101, 102}
	gotProducts := m.Products()
	if len(gotProducts) != len(wantProducts) {
		t.Fatalf("Products() = %v, want %v", gotProducts, wantProducts)
	}
	for i, p := range wantProducts {
		if gotProducts[i] != p {
			t.Errorf("Products()[%d] = %v, want %v", i, gotProducts[i], p)
		}
	}
}

func TestBuildFromOrdersEmpty(t *testing.T) {
	tests := []struct {
		name   string
		orders []core.Order
	}{
		{"无订单", nil},
		{"只有购物车", []core.Order{
			{ID: 1, UserID: 1, Status: core.OrderStatusCart, Items: []core.OrderItem{
				{ProductID: 101, Quantity: 1},
			}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildFromOrders(tt.orders)
			if !m.Empty() {
				t.Errorf("期望空矩阵，得到 users=%v products=%v", m.Users(), m.Products())
			}
		})
	}
}

func TestInteractionAddIgnoresNonPositive(t *testing.T) {
	m := NewInteraction()
	m.Add(1, 101, 0)
	m.Add(1, 101, -2)
	if !m.Empty() {
		t.Errorf("非正数量不应写入矩阵")
	}
}

func TestProductVector(t *testing.T) {
	m := NewInteraction()
	m.Add(1, 101, 2)
	m.Add(2, 101, 3)
	m.Add(2, 102, 1)

	v := m.ProductVector(101)
	if len(v) != 2 || v[1] != 2 || v[2] != 3 {
		t.Errorf("ProductVector(101) = %v, want map[1:2 2:3]", v)
	}
	if v := m.ProductVector(999); len(v) != 0 {
		t.Errorf("未知商品应返回空向量，得到 %v", v)
	}
}

func TestInteractionEqual(t *testing.T) {
	a := NewInteraction()
	a.Add(1, 101, 2)
	b := NewInteraction()
	b.Add(1, 101, 2)
	if !a.Equal(b) {
		t.Errorf("相同内容的矩阵应相等")
	}
	b.Add(1, 102, 1)
	if a.Equal(b) {
		t.Errorf("不同内容的矩阵不应相等")
	}
	if !NewInteraction().Equal(NewInteraction()) {
		t.Errorf("两个空矩阵应相等")
	}
}
