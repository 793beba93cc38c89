package profile

import (
	"context"
	"fmt"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/dsl"
)

// FallbackPersona 是没有任何规则命中时的兜底人设。
const FallbackPersona = "newcomer"

// Classifier 是可插拔的 persona 分类器。
// persona 的具体阈值属于产品配置，不在代码里写死；
// 默认规则表只是一组可替换的出厂值。
type Classifier interface {
	Classify(ctx context.Context, p *core.BehaviorProfile) (string, error)
}

// Rule 是一条 persona 规则：CEL 布尔表达式 + 命中时的 persona。
// 可用变量：diversity、activity_level、social_level、avg_budget、booking_frequency。
type Rule struct {
	Expr    string `yaml:"expr" json:"expr"`
	Persona string `yaml:"persona" json:"persona"`
}

// ruleVars 是规则表达式可见的变量名。
var ruleVars = []string{"diversity", "activity_level", "social_level", "avg_budget", "booking_frequency"}

// RuleClassifier 按顺序求值规则表，第一条命中即返回。
// 规则在构建期编译，求值期零编译开销。
type RuleClassifier struct {
	rules    []compiledRule
	fallback string
}

type compiledRule struct {
	rule    *dsl.Rule
	persona string
}

// NewRuleClassifier 编译规则表。任何一条表达式非法都在此时报错。
func NewRuleClassifier(rules []Rule, fallback string) (*RuleClassifier, error) {
	if fallback == "" {
		fallback = FallbackPersona
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Persona == "" {
			return nil, fmt.Errorf("persona rule %q: empty persona", r.Expr)
		}
		cr, err := dsl.Compile(r.Expr, ruleVars)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{rule: cr, persona: r.Persona})
	}
	return &RuleClassifier{rules: compiled, fallback: fallback}, nil
}

func (c *RuleClassifier) Classify(_ context.Context, p *core.BehaviorProfile) (string, error) {
	input := map[string]any{
		"diversity":         p.DiversityScore,
		"activity_level":    p.ActivityLevel,
		"social_level":      p.SocialLevel,
		"avg_budget":        p.Travel.AvgBudget,
		"booking_frequency": string(p.Travel.BookingFrequency),
	}
	for _, cr := range c.rules {
		ok, err := cr.rule.Eval(input)
		if err != nil {
			return "", err
		}
		if ok {
			return cr.persona, nil
		}
	}
	return c.fallback, nil
}

// DefaultRules 是出厂规则表。顺序即优先级。
func DefaultRules() []Rule {
	return []Rule{
		{Expr: `diversity >= 0.7 && activity_level >= 60.0`, Persona: "explorer"},
		{Expr: `avg_budget >= 3000.0 && activity_level >= 30.0`, Persona: "luxury_traveler"},
		{Expr: `booking_frequency == "high"`, Persona: "frequent_traveler"},
		{Expr: `activity_level >= 60.0`, Persona: "enthusiast"},
		{Expr: `activity_level >= 20.0`, Persona: "casual_traveler"},
	}
}

// DefaultClassifier 返回使用出厂规则表的分类器。
// 出厂规则保证可编译，失败属于程序缺陷。
func DefaultClassifier() *RuleClassifier {
	c, err := NewRuleClassifier(DefaultRules(), FallbackPersona)
	if err != nil {
		panic(err)
	}
	return c
}
