// Package dsl 是规则表达式层，使用 CEL (Common Expression Language) 实现。
// CEL 类型安全、线程安全，编译后的 Program 可复用。
//
// 当前唯一的业务方是画像的 persona 规则表：
//
//	diversity >= 0.7 && activity_level >= 60.0
//	avg_budget >= 3000.0
//	booking_frequency == "high"
package dsl

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule 是一条编译好的布尔规则。
type Rule struct {
	expr string
	prg  cel.Program
}

// Compile 在给定变量名集合上编译一条布尔表达式。
// 表达式必须返回 bool，编译错误在构建期暴露而不是求值期。
func Compile(expr string, vars []string) (*Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("dsl: empty expression")
	}

	decls := make([]cel.EnvOption, 0, len(vars))
	for _, v := range vars {
		decls = append(decls, cel.Variable(v, cel.DynType))
	}
	env, err := cel.NewEnv(decls...)
	if err != nil {
		return nil, fmt.Errorf("dsl: env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", expr, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", expr, err)
	}

	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本，用于日志。
func (r *Rule) Expr() string { return r.expr }

// Eval 在输入上求值。表达式返回非布尔值时报错。
func (r *Rule) Eval(input map[string]any) (bool, error) {
	out, _, err := r.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("dsl: eval %q: %w", r.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q must return boolean, got %T", r.expr, out.Value())
	}
	return result, nil
}
