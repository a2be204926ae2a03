package similarity

import (
	"math"
	"testing"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/matrix"
)

func TestFromInteractionsEmpty(t *testing.T) {
	sim := FromInteractions(matrix.NewInteraction())
	if !sim.Empty() {
		t.Errorf("空交互矩阵应得到空相似度矩阵")
	}
}

func TestFromInteractionsSymmetricAndBounded(t *testing.T) {
	m := matrix.NewInteraction()
	m.Add(1, 101, 2)
	m.Add(1, 102, 1)
	m.Add(2, 101, 3)
	m.Add(2, 103, 4)
	m.Add(3, 102, 1)
	m.Add(3, 103, 2)

	sim := FromInteractions(m)
	products := sim.Products()

	for _, i := range products {
		for _, j := range products {
			sij, sji := sim.Score(i, j), sim.Score(j, i)
			if sij != sji {
				t.Errorf("对称性破坏: sim(%d,%d)=%v != sim(%d,%d)=%v", i, j, sij, j, i, sji)
			}
			if sij < 0 || sij > 1+1e-9 {
				t.Errorf("sim(%d,%d)=%v 超出 [0,1]", i, j, sij)
			}
			// 对角线是行最大值
			if sij > sim.Score(i, i)+1e-9 {
				t.Errorf("sim(%d,%d)=%v 大于对角线 %v", i, j, sij, sim.Score(i, i))
			}
		}
		if math.Abs(sim.Score(i, i)-1.0) > 1e-9 {
			t.Errorf("对角线 sim(%d,%d)=%v, want 1.0", i, i, sim.Score(i, i))
		}
	}
}

// 购买共现模式完全相同的两个商品，相似度应为 1
func TestFromInteractionsIdenticalCoOccurrence(t *testing.T) {
	orders := []core.Order{
		{ID: 1, UserID: 1, Status: "delivered", Items: []core.OrderItem{
			{ProductID: 201, Quantity: 2},
			{ProductID: 202, Quantity: 2},
		}},
		{ID: 2, UserID: 2, Status: "delivered", Items: []core.OrderItem{
			{ProductID: 201, Quantity: 1},
			{ProductID: 202, Quantity: 1},
			{ProductID: 203, Quantity: 5},
		}},
	}
	sim := FromInteractions(matrix.BuildFromOrders(orders))
	if got := sim.Score(201, 202); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("sim(201,202) = %v, want 1.0（完全相同的购买模式）", got)
	}
}

func TestFromInteractionsNoOverlapIsZero(t *testing.T) {
	m := matrix.NewInteraction()
	m.Add(1, 101, 2)
	m.Add(2, 102, 3)
	sim := FromInteractions(m)
	if got := sim.Score(101, 102); got != 0 {
		t.Errorf("没有共同购买者的商品相似度应为 0，得到 %v", got)
	}
}
