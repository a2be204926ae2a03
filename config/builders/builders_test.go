package builders

import (
	"context"
	"testing"

	"github.com/shopkit/recommend/config"
	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/store"
)

func TestBuiltinBuildersRegistered(t *testing.T) {
	for _, typ := range []string{"rerank.topn", "rerank.sort", "filter"} {
		found := false
		for _, got := range config.SupportedTypes() {
			if got == typ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("内置类型 %q 未注册: %v", typ, config.SupportedTypes())
		}
	}
}

func TestBuildFilterNodeFromConfig(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"filters": []any{
			map[string]any{"type": "exclude", "product_ids": []any{int64(7)}},
			map[string]any{"type": "rule", "expr": "item.score < 0.0"},
		},
	})
	if err != nil {
		t.Fatalf("BuildFilterNode: %v", err)
	}

	in := []*core.Item{core.NewItem(7), core.NewItem(8)}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := core.ItemIDs(out); len(got) != 1 || got[0] != 8 {
		t.Errorf("得到 %v, want [8]", got)
	}
}

func TestBuildFilterNodeUnknownType(t *testing.T) {
	_, err := BuildFilterNode(map[string]any{
		"filters": []any{map[string]any{"type": "nope"}},
	})
	if err == nil {
		t.Errorf("未知过滤器类型应报错")
	}
}

// 数据节点注册后可以从 YAML 配置装配整条链路
func TestRegisterDataNodesAndBuildPipeline(t *testing.T) {
	kv := store.NewMemoryStore()
	catalog := store.NewKVCatalog(kv)
	orders := store.NewKVOrders(kv)
	ctx := context.Background()

	for _, p := range []core.Product{{ID: 1}, {ID: 2}, {ID: 3}} {
		if err := catalog.SaveProduct(ctx, p); err != nil {
			t.Fatalf("SaveProduct: %v", err)
		}
	}
	if err := orders.SaveOrder(ctx, core.Order{ID: 1, UserID: 1, Status: "delivered",
		Items: []core.OrderItem{{ProductID: 2, Quantity: 4}}}); err != nil {
		t.Fatalf("SaveOrder: %v", err)
	}

	RegisterDataNodes(catalog, orders)

	var cfg pipeline.Config
	cfg.Pipeline.Name = "trending"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.trending", Config: map[string]any{"top_k": int64(2)}},
		{Type: "rerank.topn", Config: map[string]any{"n": int64(2)}},
	}
	if err := config.ValidatePipelineConfig(&cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	pl, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	items, err := pl.Run(ctx, &core.RecommendContext{Limit: 2}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 热销 2，目录补 1
	if got := core.ItemIDs(items); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("得到 %v, want [2 1]", got)
	}
}
