package rank

import (
	"context"
	"testing"

	"github.com/shopkit/recommend/core"
)

func TestQualityFactorNoAdjustment(t *testing.T) {
	// 无评论或评论数不足 5 条：无论均分多少，一律 1.0
	tests := []struct {
		name  string
		avg   float64
		count int
	}{
		{"无评论高分", 5.0, 0},
		{"无评论低分", 1.0, 0},
		{"证据不足低分", 1.0, 4},
		{"证据不足高分", 5.0, 4},
		{"证据不足中间", 3.0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualityFactor(tt.avg, tt.count); got != 1.0 {
				t.Errorf("QualityFactor(%v, %d) = %v, want 1.0", tt.avg, tt.count, got)
			}
		})
	}
}

func TestQualityFactorBranches(t *testing.T) {
	tests := []struct {
		name   string
		avg    float64
		count  int
		lo, hi float64
	}{
		{"好评加权", 5.0, 10, 1.0, 1.2},
		{"好评但评论不足 10 条走中性", 4.5, 9, 0.9, 1.1},
		{"加权分支下界", 4.5, 10, 1.0, 1.2},
		{"差评降权", 1.0, 100, 0.5, 1.0},
		{"差评边界 3.49", 3.49, 50, 0.5, 1.0},
		{"中间带 3.5", 3.5, 50, 0.9, 1.1},
		{"中间带 4.49", 4.49, 100, 0.9, 1.1},
		{"中性高置信", 4.0, 50, 0.9, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QualityFactor(tt.avg, tt.count)
			if got < tt.lo || got > tt.hi {
				t.Errorf("QualityFactor(%v, %d) = %v，应落在 [%v, %v]", tt.avg, tt.count, got, tt.lo, tt.hi)
			}
		})
	}
}

func TestQualityFactorPenaltyFloor(t *testing.T) {
	// 大量一星差评：Wilson 下界趋于 0，因子落到 0.5 保底附近
	got := QualityFactor(1.0, 100)
	if got > 0.51 {
		t.Errorf("QualityFactor(1.0, 100) = %v，应逼近保底 0.5", got)
	}
	// 刚好 5 条一星差评同样触发保底
	if got := QualityFactor(1.0, 5); got > 0.51 {
		t.Errorf("QualityFactor(1.0, 5) = %v，应逼近保底 0.5", got)
	}
}

func TestQualityFactorBoostCap(t *testing.T) {
	// 加权封顶 1.2：Wilson 下界 <= 1，代数上因子最大 1.2
	for _, count := range []int{10, 100, 10000} {
		if got := QualityFactor(5.0, count); got > 1.2 {
			t.Errorf("QualityFactor(5.0, %d) = %v 超过封顶 1.2", count, got)
		}
	}
	// 评论越多置信越强，满分商品的加权单调不降
	if QualityFactor(5.0, 100) < QualityFactor(5.0, 10) {
		t.Errorf("满分商品评论更多时加权不应更低")
	}
}

type stubCatalog struct {
	products map[int64]core.Product
}

func (s *stubCatalog) Products(_ context.Context, ids []int64) ([]core.Product, error) {
	out := make([]core.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) ProductsByCategory(_ context.Context, _ []string) ([]core.Product, error) {
	return nil, nil
}

func TestQualityNodeProcess(t *testing.T) {
	catalog := &stubCatalog{products: map[int64]core.Product{
		1: {ID: 1, RatingAvg: 1.0, RatingCount: 100}, // 降权
		2: {ID: 2, RatingAvg: 5.0, RatingCount: 100}, // 加权
	}}
	node := &QualityNode{Catalog: catalog}

	in := []*core.Item{
		core.NewItem(1),
		core.NewItem(2),
		core.NewItem(3), // 目录中不存在，因子 1.0
	}
	for _, it := range in {
		it.Score = 1.0
	}

	out, err := node.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0].Score >= 1.0 {
		t.Errorf("差评商品分数应被降权，得到 %v", out[0].Score)
	}
	if out[1].Score <= 1.0 {
		t.Errorf("好评商品分数应被加权，得到 %v", out[1].Score)
	}
	if out[2].Score != 1.0 {
		t.Errorf("目录缺失商品分数应保持不变，得到 %v", out[2].Score)
	}
	if _, ok := out[0].Labels["quality_factor"]; !ok {
		t.Errorf("质量因子应写入 label")
	}
}
