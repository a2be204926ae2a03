// Package dsl 提供基于 CEL (Common Expression Language) 的候选规则求值器，
// 供过滤阶段表达商品可推荐性的业务规则（缺货、下架、黑名单类目等）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopkit/recommend/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，可跨请求复用（编译一次，多次求值）。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：label.recall_source == "trending" / item.score > 0.7
//   - 元信息：item.meta.stock == 0 / item.meta.category == "Shoes"
//   - 逻辑：label.recall_source == "category" && item.score > 0.5
//   - 存在性：label.quality_factor != null
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。空表达式也是合法的，求值恒为 true。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return &Program{expr: expr}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return &Program{expr: expr, prg: prg}, nil
}

// Eval 对单个候选求值，返回布尔结果。
// 访问不存在的 key 会得到错误；用 label.key != null 做存在性检查。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			// label.recall_source 直接取到 value，写规则时最常用
			labelAccessor[k] = v.Value
		}
	}

	itemMap := map[string]any{}
	if item != nil {
		itemMap = map[string]any{
			"id":     item.ID,
			"score":  item.Score,
			"meta":   item.Meta,
			"labels": labels,
		}
	}

	rctxMap := map[string]any{}
	if rctx != nil {
		rctxMap = map[string]any{
			"user_id": rctx.UserID,
			"scene":   rctx.Scene,
			"limit":   rctx.Limit,
			"params":  rctx.Params,
		}
	}

	return map[string]any{
		"item":  itemMap,
		"label": labelAccessor,
		"rctx":  rctxMap,
	}
}
