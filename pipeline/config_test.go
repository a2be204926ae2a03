package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopkit/recommend/core"
)

type echoNode struct {
	name string
}

func (n *echoNode) Name() string { return n.name }
func (n *echoNode) Kind() Kind   { return KindReRank }
func (n *echoNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestLoadFromYAMLAndBuild(t *testing.T) {
	content := `
pipeline:
  name: cart
  nodes:
    - type: echo
      config:
        label: first
    - type: echo
      config:
        label: second
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if cfg.Pipeline.Name != "cart" || len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("配置解析错误: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Nodes[0].Config["label"] != "first" {
		t.Errorf("node config 未透传: %v", cfg.Pipeline.Nodes[0].Config)
	}

	factory := NewNodeFactory()
	factory.Register("echo", func(c map[string]any) (Node, error) {
		return &echoNode{name: c["label"].(string)}, nil
	})
	pl, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(pl.Nodes) != 2 || pl.Nodes[0].Name() != "first" {
		t.Errorf("Pipeline 装配错误: %+v", pl.Nodes)
	}
}

func TestBuildPipelineUnknownType(t *testing.T) {
	var cfg Config
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "does.not.exist"}}
	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Errorf("未注册的 node 类型应报错")
	}
}

func TestPipelineRunChainsNodes(t *testing.T) {
	pl := &Pipeline{Nodes: []Node{&echoNode{name: "a"}, &echoNode{name: "b"}}}
	in := []*core.Item{core.NewItem(1)}
	out, err := pl.Run(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("得到 %v, want [1]", core.ItemIDs(out))
	}
}
