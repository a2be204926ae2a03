// Package builders 注册内置 Node 的配置构建逻辑。
// 入口处 import _ "github.com/shopkit/recommend/config/builders" 即可生效。
package builders

import (
	"fmt"
	"time"

	"github.com/shopkit/recommend/config"
	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/filter"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/conv"
	"github.com/shopkit/recommend/rank"
	"github.com/shopkit/recommend/recall"
	"github.com/shopkit/recommend/rerank"
)

func init() {
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.sort", BuildSortNode)
	config.Register("filter", BuildFilterNode)
}

// RegisterDataNodes 注册依赖数据存储的 Node 类型，存储由调用方注入。
// favorites 允许为 nil。
func RegisterDataNodes(catalog core.CatalogStore, orders core.OrderStore) {
	config.Register("recall.trending", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Trending{
			Orders:  orders,
			Catalog: catalog,
			TopK:    int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	})
	config.Register("recall.category", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.CategoryFallback{
			Catalog: catalog,
			TopK:    int(conv.ConfigGetInt64(cfg, "top_k", 0)),
		}, nil
	})
	config.Register("rank.quality", func(cfg map[string]any) (pipeline.Node, error) {
		return &rank.QualityNode{Catalog: catalog}, nil
	})
	config.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFanoutNode(cfg, catalog, orders)
	})
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildSortNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.SortNode{}, nil
}

// BuildFilterNode 根据配置装配过滤链，支持 exclude（静态黑名单）与
// rule（CEL 表达式）两种过滤器。
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "exclude":
			filters = append(filters, &filter.ExcludeFilter{
				IDs: conv.SliceAnyToInt64(filterMap["product_ids"]),
			})
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", expr, err)
			}
			filters = append(filters, rf)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildFanoutNode(cfg map[string]any, catalog core.CatalogStore, orders core.OrderStore) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet(sourceMap, "type", ""); sourceType {
		case "trending":
			sources = append(sources, &recall.Trending{
				Orders:  orders,
				Catalog: catalog,
				TopK:    int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
			})
		case "category":
			sources = append(sources, &recall.CategoryFallback{
				Catalog: catalog,
				TopK:    int(conv.ConfigGetInt64(sourceMap, "top_k", 0)),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources: sources,
		Dedup:   conv.ConfigGet(cfg, "dedup", true),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}
