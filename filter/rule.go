package filter

import (
	"context"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述"什么样的候选应该被剔除"。
// 表达式求值为 true 时该候选被过滤。
//
// 示例：
//   - `item.meta.stock == 0`          剔除缺货商品
//   - `item.meta.category == "Adult"` 剔除指定类目
//   - `item.score < 0.01`             剔除弱信号候选
type RuleFilter struct {
	expr string
	prg  *dsl.Program
}

// NewRuleFilter 编译规则表达式。表达式在构建时编译一次，请求内复用。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{expr: expr, prg: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	matched, err := f.prg.Eval(item, rctx)
	if err != nil {
		// 规则求值失败（如访问不存在的 meta key）按保留处理，错误上抛给 FilterNode 记录
		return false, err
	}
	return matched, nil
}
