package recall

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

type fakeCatalog struct {
	items []core.CatalogItem
	err   error

	candidateCalls int
}

func (f *fakeCatalog) Item(_ context.Context, ref core.ItemRef) (core.CatalogItem, error) {
	for _, it := range f.items {
		if it.Ref() == ref {
			return it, nil
		}
	}
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "item not found")
}

func (f *fakeCatalog) Candidates(_ context.Context, q core.CandidateQuery) ([]core.CatalogItem, error) {
	f.candidateCalls++
	if f.err != nil {
		return nil, f.err
	}
	hit := func(it core.CatalogItem) bool {
		for _, c := range q.Categories {
			if it.Category() == c {
				return true
			}
		}
		for _, d := range q.Destinations {
			if it.Destination() == d {
				return true
			}
		}
		for _, tg := range q.Tags {
			for _, tag := range it.Tags() {
				if tag == tg {
					return true
				}
			}
		}
		return false
	}
	var out []core.CatalogItem
	for _, it := range f.items {
		if hit(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreatedWithin(_ context.Context, window time.Duration, itemType core.ItemType) ([]core.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.CatalogItem
	for _, it := range f.items {
		if itemType != "" && it.Ref().Type != itemType {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func profileWith(catFreq map[string]float64) *core.BehaviorProfile {
	p := core.NewBehaviorProfile("u1")
	for k, v := range catFreq {
		p.CategoryFreq[k] = v
	}
	return p
}

func TestContentRecall_ScoreBreakdown(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{items: []core.CatalogItem{
		&core.Content{
			ID:        "c1",
			Cat:       "Adventure",
			Stats:     core.Engagement{Likes: 100},
			Published: now.AddDate(0, 0, -40), // 超过 30 天，新鲜度为 0
		},
	}}

	r := &ContentRecall{Catalog: catalog, Now: func() time.Time { return now }}
	rctx := &core.RecommendContext{
		UserID:  "u1",
		Profile: profileWith(map[string]float64{"Adventure": 5, "Culture": 2}),
	}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	// 0.3×5（类别） + 0.01×100（点赞） = 2.5
	if got := items[0].Score; math.Abs(got-2.5) > 1e-9 {
		t.Errorf("score = %v, want 2.5", got)
	}
	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != string(core.SourceContent) {
		t.Errorf("recall_source label = %+v", items[0].Labels["recall_source"])
	}
}

func TestContentRecall_FreshnessBoost(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	catalog := &fakeCatalog{items: []core.CatalogItem{
		&core.Content{ID: "fresh", Cat: "Adventure", Published: now.AddDate(0, 0, -1)},
		&core.Content{ID: "stale", Cat: "Adventure", Published: now.AddDate(0, 0, -100)},
	}}

	r := &ContentRecall{Catalog: catalog, Now: func() time.Time { return now }}
	rctx := &core.RecommendContext{Profile: profileWith(map[string]float64{"Adventure": 1})}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 2 || items[0].Ref.ID != "fresh" {
		t.Fatalf("fresh item must rank first, got %+v", items)
	}
	// 两者唯一差异是新鲜度：0.02 × (30−1) = 0.58
	diff := items[0].Score - items[1].Score
	if math.Abs(diff-0.58) > 1e-9 {
		t.Errorf("freshness diff = %v, want 0.58", diff)
	}
}

func TestContentRecall_EmptyProfileYieldsNothing(t *testing.T) {
	catalog := &fakeCatalog{items: []core.CatalogItem{
		&core.Content{ID: "c1", Cat: "Adventure", Published: time.Now()},
	}}
	r := &ContentRecall{Catalog: catalog}

	items, err := r.Recall(context.Background(), &core.RecommendContext{Profile: core.NewBehaviorProfile("u1")})
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("cold-start user must get no content recall, got %d items", len(items))
	}
	if catalog.candidateCalls != 0 {
		t.Errorf("catalog must not be queried for an empty profile")
	}
}

func TestContentRecall_CatalogFailureIsUpstream(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog down")}
	r := &ContentRecall{Catalog: catalog}
	rctx := &core.RecommendContext{Profile: profileWith(map[string]float64{"Adventure": 1})}

	_, err := r.Recall(context.Background(), rctx)
	if !core.IsUpstreamUnavailable(err) {
		t.Fatalf("err = %v, want UPSTREAM_UNAVAILABLE", err)
	}
	if catalog.candidateCalls != 2 {
		t.Errorf("candidateCalls = %d, want 2 (one retry)", catalog.candidateCalls)
	}
}

func TestContentRecall_SimilarExcludesAnchor(t *testing.T) {
	now := time.Now()
	anchor := &core.Content{ID: "c1", Cat: "Adventure", Dest: "Nepal", TagList: []string{"hiking"}, Published: now}
	catalog := &fakeCatalog{items: []core.CatalogItem{
		anchor,
		&core.Content{ID: "c2", Cat: "Adventure", Published: now},
		&core.Content{ID: "c3", Cat: "Culture", Dest: "Nepal", Published: now},
		&core.Content{ID: "c4", Cat: "Food", Published: now}, // 无共同特征
	}}

	r := &ContentRecall{Catalog: catalog}
	items, err := r.Similar(context.Background(), anchor, 10)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}

	for _, it := range items {
		if it.Ref == anchor.Ref() {
			t.Error("anchor must be excluded from its own similar list")
		}
		if it.Ref.ID == "c4" {
			t.Error("items with no shared trait must not appear")
		}
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}
