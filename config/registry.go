// Package config 是配置驱动的 Node 注册表：各组件在 init 中注册自己的
// 构建逻辑，YAML/JSON 配置按 type 名装配 Pipeline。
//
// 使用配置驱动时，需在入口处 import _ "github.com/shopkit/recommend/config/builders"
// 触发内置 Node（rerank.topn、rerank.sort、filter 等）的注册；依赖数据存储的
// Node（recall.trending、recall.category、rank.quality）通过 RegisterDataNodes
// 注入存储后才可用。
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopkit/recommend/pipeline"
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据配置构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑。建议在组件的 init 中调用，
// 例如 config.Register("rerank.topn", BuildTopNNode)。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表的 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 校验配置中所有 node 类型均已注册。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			continue
		}
		defaultBuildersMu.RLock()
		_, ok := defaultBuilders[nc.Type]
		defaultBuildersMu.RUnlock()
		if !ok {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, SupportedTypes())
		}
	}
	return nil
}
