package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/meikit/meikit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("user", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选规则的解释器，使用 CEL (Common Expression Language) 实现。
// 业务规则以表达式下发（如预算、肤质约束），无需改代码即可调整过滤策略。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.meta.price > 300.0 / item.score >= 0.5
//   - 标签：label.signal_source.contains("content")
//   - 用户：user.budget_max > 0.0 && item.meta.price > user.budget_max
//   - 逻辑：item.meta.category == "面膜" && item.score > 0.8
//
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行规则表达式，返回布尔结果。空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	for k, v := range e.item.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
		// label.signal_source 直接取 value，书写更顺手
		labelAccessor[k] = v.Value
	}

	item := map[string]interface{}{
		"id":       e.item.ID,
		"score":    e.item.Score,
		"features": e.item.Features,
		"meta":     e.item.Meta,
		"labels":   labels,
	}

	user := map[string]interface{}{
		"id":         "",
		"skin_type":  "",
		"budget_min": 0.0,
		"budget_max": 0.0,
	}
	if e.rctx != nil {
		user["id"] = e.rctx.UserID
		if e.rctx.User != nil {
			user["skin_type"] = e.rctx.User.SkinType
			user["budget_min"] = e.rctx.User.BudgetMin
			user["budget_max"] = e.rctx.User.BudgetMax
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"user":  user,
	}
}
