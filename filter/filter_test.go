package filter

import (
	"context"
	"testing"

	"github.com/shopkit/recommend/core"
)

func TestExcludeFilter(t *testing.T) {
	f := &ExcludeFilter{IDs: []int64{99}}
	rctx := &core.RecommendContext{Exclude: map[int64]struct{}{7: {}}}

	tests := []struct {
		name string
		id   int64
		want bool
	}{
		{"排除集命中", 7, true},
		{"静态黑名单命中", 99, true},
		{"正常候选", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(context.Background(), rctx, core.NewItem(tt.id))
			if err != nil {
				t.Fatalf("ShouldFilter: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%d) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestRuleFilter(t *testing.T) {
	f, err := NewRuleFilter(`item.meta.stock == 0`)
	if err != nil {
		t.Fatalf("NewRuleFilter: %v", err)
	}

	outOfStock := core.NewItem(1)
	outOfStock.Meta["stock"] = 0
	inStock := core.NewItem(2)
	inStock.Meta["stock"] = 3

	if got, err := f.ShouldFilter(context.Background(), nil, outOfStock); err != nil || !got {
		t.Errorf("缺货商品应被过滤, got=%v err=%v", got, err)
	}
	if got, err := f.ShouldFilter(context.Background(), nil, inStock); err != nil || got {
		t.Errorf("有货商品应保留, got=%v err=%v", got, err)
	}
}

func TestRuleFilterScoreThreshold(t *testing.T) {
	f, err := NewRuleFilter(`item.score < 0.01`)
	if err != nil {
		t.Fatalf("NewRuleFilter: %v", err)
	}
	weak := core.NewItem(1)
	weak.Score = 0.001
	if got, _ := f.ShouldFilter(context.Background(), nil, weak); !got {
		t.Errorf("弱信号候选应被过滤")
	}
}

func TestFilterNodeProcess(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&ExcludeFilter{IDs: []int64{2}}}}
	in := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3)}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := core.ItemIDs(out)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("得到 %v, want [1 3]", got)
	}
}

// 规则求值出错（访问不存在的 meta key）时保留候选
func TestFilterNodeKeepsItemOnRuleError(t *testing.T) {
	rf, err := NewRuleFilter(`item.meta.missing_key == 1`)
	if err != nil {
		t.Fatalf("NewRuleFilter: %v", err)
	}
	node := &FilterNode{Filters: []Filter{rf}}
	in := []*core.Item{core.NewItem(1)}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("求值失败的候选应保留，得到 %v", core.ItemIDs(out))
	}
}

func TestRuleFilterEmptyExpr(t *testing.T) {
	f, err := NewRuleFilter("")
	if err != nil {
		t.Fatalf("NewRuleFilter: %v", err)
	}
	// 空表达式恒为 true：语义是"全部过滤"，由上层决定是否使用
	if got, _ := f.ShouldFilter(context.Background(), nil, core.NewItem(1)); !got {
		t.Errorf("空表达式应恒为 true")
	}
}
