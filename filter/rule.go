package filter

import (
	"context"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/dsl"
)

// Rule 是规则过滤器：任一 CEL 表达式对候选求值为 true 即剔除。
// 规则描述的是"什么不该推"，例如超预算：
//
//	user.budget_max > 0.0 && item.meta.price > user.budget_max
//
// 表达式编译或求值失败时视为不命中，避免坏规则清空结果。
type Rule struct {
	Rules []string
}

func (f *Rule) Name() string {
	return "filter.rule"
}

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if len(f.Rules) == 0 {
		return false, nil
	}
	ev := dsl.NewEval(item, rctx)
	for _, expr := range f.Rules {
		if expr == "" {
			continue
		}
		hit, err := ev.Evaluate(expr)
		if err != nil {
			continue
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}
