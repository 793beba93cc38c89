package search

import (
	"context"
	"strings"
)

// StaticProvider 从固定候选里出建议：与查询共享词的条目按命中数加权。
// 外围系统可以换成目录驱动的提供者，这里是出厂实现。
type StaticProvider struct {
	// Entries 候选文本与基础相关度
	Entries []Suggestion
}

func (p *StaticProvider) Suggest(_ context.Context, query string, limit int) ([]Suggestion, error) {
	tokens := tokenize(query)

	out := make([]Suggestion, 0, len(p.Entries))
	for _, e := range p.Entries {
		relevance := e.Relevance
		for _, w := range strings.Fields(strings.ToLower(e.Text)) {
			if tokens[w] {
				relevance += 0.2
			}
		}
		out = append(out, Suggestion{Text: e.Text, Relevance: relevance})
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DefaultProviders 返回出厂建议提供者。
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		CategoryDestinations: &StaticProvider{Entries: []Suggestion{
			{Text: "beach destinations in Asia", Relevance: 0.6},
			{Text: "mountain escapes this season", Relevance: 0.5},
			{Text: "island getaways on a budget", Relevance: 0.5},
			{Text: "hidden coastal villages", Relevance: 0.4},
		}},
		CategoryActivities: &StaticProvider{Entries: []Suggestion{
			{Text: "best hiking trails for beginners", Relevance: 0.6},
			{Text: "diving spots with coral reefs", Relevance: 0.5},
			{Text: "ski resorts open now", Relevance: 0.4},
			{Text: "camping gear essentials", Relevance: 0.4},
		}},
		CategoryContent: &StaticProvider{Entries: []Suggestion{
			{Text: "travel guides by locals", Relevance: 0.6},
			{Text: "trip itinerary templates", Relevance: 0.5},
			{Text: "packing tips and checklists", Relevance: 0.4},
		}},
		CategoryGeneral: &StaticProvider{Entries: []Suggestion{
			{Text: "popular trips this month", Relevance: 0.5},
			{Text: "top rated travel stories", Relevance: 0.4},
		}},
	}
}
