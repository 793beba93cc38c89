// Package search 是轻量的搜索意图分类器：
// 把自由文本映射到建议类别，并分发给各类别的建议提供者。
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

// 建议类别
const (
	CategoryDestinations = "destinations"
	CategoryActivities   = "activities"
	CategoryContent      = "content"
	CategoryGeneral      = "general"
)

// minQueryLen 以下的查询直接返回空结果
const minQueryLen = 2

// Suggestion 是一条搜索建议。
type Suggestion struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

// Result 是一次意图分类的产出。
type Result struct {
	Categories  []string     `json:"categories"`
	Confidence  float64      `json:"confidence"` // min(1, 0.3 × 类别数)
	Suggestions []Suggestion `json:"suggestions"`
}

// Provider 是类别维度的建议提供者。
type Provider interface {
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
}

// Classifier 用三组互斥的关键词表做意图识别（大小写不敏感、按词命中）。
// 一个词最多属于一张表；没有任何命中时落到 general。
type Classifier struct {
	// Providers 按类别分发；缺失的类别没有建议但仍计入分类结果
	Providers map[string]Provider

	// 关键词表，为空时使用出厂表
	DestinationTerms []string
	ActivityTerms    []string
	ContentTerms     []string

	Logger zerolog.Logger
}

// Classify 对查询做意图分类并聚合各类别的建议。
// 查询短于 2 个字符时返回空 Result。
func (c *Classifier) Classify(ctx context.Context, query string, limit int) (*Result, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLen {
		return &Result{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	tokens := tokenize(query)

	categories := make([]string, 0, 3)
	if matchAny(tokens, c.destinationTerms()) {
		categories = append(categories, CategoryDestinations)
	}
	if matchAny(tokens, c.activityTerms()) {
		categories = append(categories, CategoryActivities)
	}
	if matchAny(tokens, c.contentTerms()) {
		categories = append(categories, CategoryContent)
	}
	if len(categories) == 0 {
		categories = append(categories, CategoryGeneral)
	}

	confidence := 0.3 * float64(len(categories))
	if confidence > 1 {
		confidence = 1
	}

	suggestions := make([]Suggestion, 0, limit)
	for _, cat := range categories {
		p, ok := c.Providers[cat]
		if !ok || p == nil {
			continue
		}
		sug, err := p.Suggest(ctx, query, limit)
		if err != nil {
			// 单个提供者失败只缩小建议集
			c.Logger.Warn().Err(err).Str("category", cat).
				Str("code", core.ErrorCodeComputationSkipped).
				Msg("suggestion provider failed")
			continue
		}
		suggestions = append(suggestions, sug...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Relevance > suggestions[j].Relevance
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return &Result{
		Categories:  categories,
		Confidence:  confidence,
		Suggestions: suggestions,
	}, nil
}

func (c *Classifier) destinationTerms() []string {
	if len(c.DestinationTerms) > 0 {
		return c.DestinationTerms
	}
	return defaultDestinationTerms
}

func (c *Classifier) activityTerms() []string {
	if len(c.ActivityTerms) > 0 {
		return c.ActivityTerms
	}
	return defaultActivityTerms
}

func (c *Classifier) contentTerms() []string {
	if len(c.ContentTerms) > 0 {
		return c.ContentTerms
	}
	return defaultContentTerms
}

func tokenize(query string) map[string]bool {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[strings.Trim(f, ".,!?:;\"'()")] = true
	}
	return tokens
}

func matchAny(tokens map[string]bool, terms []string) bool {
	for _, t := range terms {
		if tokens[t] {
			return true
		}
	}
	return false
}

// 出厂关键词表。三张表互斥。
var (
	defaultDestinationTerms = []string{
		"beach", "mountain", "mountains", "island", "city", "coast", "desert",
		"lake", "paris", "tokyo", "bali", "goa", "alps", "himalaya", "maldives",
		"europe", "asia", "countryside", "village",
	}

	defaultActivityTerms = []string{
		"hiking", "trekking", "diving", "surfing", "skiing", "camping",
		"safari", "kayaking", "climbing", "cycling", "snorkeling", "rafting",
		"sightseeing", "photography", "yoga",
	}

	defaultContentTerms = []string{
		"guide", "blog", "story", "stories", "tips", "itinerary", "review",
		"reviews", "article", "vlog", "journal", "checklist",
	}
)
