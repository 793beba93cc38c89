package recall

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

func TestCosine(t *testing.T) {
	a := map[string]float64{"cat:a": 3, "dest:x": 2}
	b := map[string]float64{"cat:a": 1, "tag:y": 5}

	tests := []struct {
		name string
		a, b map[string]float64
		want float64
	}{
		{"identical vectors", a, a, 1},
		{"orthogonal vectors", map[string]float64{"cat:a": 1}, map[string]float64{"cat:b": 1}, 0},
		{"empty left", nil, b, 0},
		{"empty right", a, nil, 0},
		{"scaled vector keeps similarity", map[string]float64{"cat:a": 1, "cat:b": 1},
			map[string]float64{"cat:a": 10, "cat:b": 10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}

	// 对称性与值域
	if s1, s2 := Cosine(a, b), Cosine(b, a); math.Abs(s1-s2) > 1e-12 {
		t.Errorf("Cosine not symmetric: %v vs %v", s1, s2)
	}
	if s := Cosine(a, b); s < 0 || s > 1 {
		t.Errorf("Cosine = %v, want in [0,1]", s)
	}
}

type collabActivities struct {
	events map[string][]core.ActivityEvent
	active []string

	eventsErr map[string]error
}

func (f *collabActivities) UserEvents(_ context.Context, userID string) ([]core.ActivityEvent, error) {
	if err := f.eventsErr[userID]; err != nil {
		return nil, err
	}
	return f.events[userID], nil
}

func (f *collabActivities) FollowsGiven(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *collabActivities) RecentActiveUsers(_ context.Context, limit int) ([]string, error) {
	if len(f.active) > limit {
		return f.active[:limit], nil
	}
	return f.active, nil
}

type fakeVectors struct {
	vectors map[string]map[string]float64
	errs    map[string]error
}

func (f *fakeVectors) Vector(_ context.Context, userID string) (map[string]float64, error) {
	if err := f.errs[userID]; err != nil {
		return nil, err
	}
	return f.vectors[userID], nil
}

func collabContext(userID string) *core.RecommendContext {
	p := core.NewBehaviorProfile(userID)
	p.CategoryFreq["Adventure"] = 3
	return &core.RecommendContext{UserID: userID, Profile: p}
}

func TestCollaborativeRecall_PeerItemsScoredBySimilarity(t *testing.T) {
	seen := core.ItemRef{Type: core.ItemTypeContent, ID: "seen"}
	authored := core.ItemRef{Type: core.ItemTypeContent, ID: "authored"}
	liked := core.ItemRef{Type: core.ItemTypeContent, ID: "liked"}

	activities := &collabActivities{
		active: []string{"target", "peer", "stranger"},
		events: map[string][]core.ActivityEvent{
			"target": {{Kind: core.ActivityLiked, Target: seen}},
			"peer": {
				{Kind: core.ActivityAuthored, Target: authored},
				{Kind: core.ActivityLiked, Target: liked},
				{Kind: core.ActivityLiked, Target: seen}, // 目标已接触，不推荐
			},
		},
	}
	vectors := &fakeVectors{vectors: map[string]map[string]float64{
		"peer":     {"cat:Adventure": 6},  // 同方向，sim = 1
		"stranger": {"cat:Beach": 1},      // 正交，被阈值挡掉
	}}

	r := &CollaborativeRecall{Activities: activities, Vectors: vectors}
	items, err := r.Recall(context.Background(), collabContext("target"))
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 (seen item excluded)", len(items))
	}
	// authored 权重 2 > liked 权重 1
	if items[0].Ref != authored || math.Abs(items[0].Score-2) > 1e-9 {
		t.Errorf("top item = %+v score %v, want authored with 2", items[0].Ref, items[0].Score)
	}
	if items[1].Ref != liked || math.Abs(items[1].Score-1) > 1e-9 {
		t.Errorf("second item = %+v score %v, want liked with 1", items[1].Ref, items[1].Score)
	}
	for _, it := range items {
		if it.Ref == seen {
			t.Error("items already touched by the target must not be recommended")
		}
	}
}

func TestCollaborativeRecall_FillsCreatedAtFromCatalog(t *testing.T) {
	listed := core.ItemRef{Type: core.ItemTypeContent, ID: "listed"}
	ghost := core.ItemRef{Type: core.ItemTypeContent, ID: "ghost"}
	published := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	activities := &collabActivities{
		active: []string{"target", "peer"},
		events: map[string][]core.ActivityEvent{
			"peer": {
				{Kind: core.ActivityAuthored, Target: listed},
				{Kind: core.ActivityLiked, Target: ghost}, // 目录里不存在
			},
		},
	}
	vectors := &fakeVectors{vectors: map[string]map[string]float64{
		"peer": {"cat:Adventure": 1},
	}}
	catalog := &fakeCatalog{items: []core.CatalogItem{
		&core.Content{ID: "listed", Cat: "Adventure", Published: published},
	}}

	r := &CollaborativeRecall{Activities: activities, Vectors: vectors, Catalog: catalog}
	items, err := r.Recall(context.Background(), collabContext("target"))
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for _, it := range items {
		switch it.Ref {
		case listed:
			// 融合层同分时"新物品优先"依赖这个元信息
			if !it.CreatedAtMeta().Equal(published) {
				t.Errorf("created_at = %v, want %v", it.CreatedAtMeta(), published)
			}
		case ghost:
			if !it.CreatedAtMeta().IsZero() {
				t.Errorf("missing catalog item must keep zero created_at, got %v", it.CreatedAtMeta())
			}
		}
	}
}

func TestCollaborativeRecall_PeerFailureShrinksResult(t *testing.T) {
	good := core.ItemRef{Type: core.ItemTypeContent, ID: "good"}
	activities := &collabActivities{
		active: []string{"target", "ok", "broken"},
		events: map[string][]core.ActivityEvent{
			"ok": {{Kind: core.ActivityAuthored, Target: good}},
		},
		eventsErr: map[string]error{"broken": errors.New("timeout")},
	}
	vectors := &fakeVectors{
		vectors: map[string]map[string]float64{
			"ok":     {"cat:Adventure": 1},
			"broken": {"cat:Adventure": 1},
		},
	}

	r := &CollaborativeRecall{Activities: activities, Vectors: vectors}
	items, err := r.Recall(context.Background(), collabContext("target"))
	if err != nil {
		t.Fatalf("single peer failure must not abort the batch: %v", err)
	}
	if len(items) != 1 || items[0].Ref != good {
		t.Errorf("items = %+v, want only the healthy peer's item", items)
	}
}

func TestCollaborativeRecall_EmptyProfileYieldsNothing(t *testing.T) {
	r := &CollaborativeRecall{
		Activities: &collabActivities{active: []string{"a"}},
		Vectors:    &fakeVectors{},
	}
	rctx := &core.RecommendContext{UserID: "u", Profile: core.NewBehaviorProfile("u")}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("cold-start user must get no collaborative recall")
	}
}
