package rerank

import (
	"context"
	"testing"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

func sourced(ref core.ItemRef, score float64, source core.RecSource) *core.Item {
	it := core.NewItem(ref)
	it.Score = score
	it.PutLabel("recall_source", utils.Label{Value: string(source), Source: "recall"})
	return it
}

func TestFusion_DeduplicatesKeepingMaxScore(t *testing.T) {
	dup := core.ItemRef{Type: core.ItemTypeContent, ID: "dup"}
	other := core.ItemRef{Type: core.ItemTypePackage, ID: "dup"} // 同 ID 不同类型，不算重复

	items := []*core.Item{
		sourced(dup, 1.0, core.SourceContent),
		sourced(dup, 3.0, core.SourceCollaborative),
		sourced(dup, 2.0, core.SourceTrending),
		sourced(other, 0.5, core.SourceTrending),
	}

	out, err := (&Fusion{}).Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	seen := map[string]bool{}
	for _, it := range out {
		if seen[it.Ref.Key()] {
			t.Fatalf("duplicate (type,id) after fusion: %s", it.Ref.Key())
		}
		seen[it.Ref.Key()] = true
	}

	if out[0].Ref != dup || out[0].Score != 3.0 {
		t.Errorf("winner = %+v score %v, want dup with max score 3.0", out[0].Ref, out[0].Score)
	}

	// 所有贡献来源都累积进 recall_source，胜出来源排在首位
	sources := utils.SplitValues(out[0].Labels["recall_source"])
	if len(sources) != 3 || sources[0] != string(core.SourceCollaborative) {
		t.Errorf("merged sources = %v, want collaborative first of 3", sources)
	}
}

func TestFusion_SortsByScoreThenRecency(t *testing.T) {
	now := time.Now()
	newer := sourced(core.ItemRef{Type: core.ItemTypeContent, ID: "new"}, 1.0, core.SourceContent)
	newer.Meta["created_at"] = now
	older := sourced(core.ItemRef{Type: core.ItemTypeContent, ID: "old"}, 1.0, core.SourceContent)
	older.Meta["created_at"] = now.AddDate(0, 0, -5)
	top := sourced(core.ItemRef{Type: core.ItemTypeContent, ID: "top"}, 9.0, core.SourceContent)

	out, err := (&Fusion{}).Process(context.Background(), nil, []*core.Item{older, newer, top})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Fatalf("scores not non-increasing at %d", i)
		}
	}
	if out[0].Ref.ID != "top" || out[1].Ref.ID != "new" || out[2].Ref.ID != "old" {
		t.Errorf("order = %s %s %s, want top new old", out[0].Ref.ID, out[1].Ref.ID, out[2].Ref.ID)
	}
}

func TestTopN_FallsBackToRequestLimit(t *testing.T) {
	items := []*core.Item{
		core.NewItem(core.ItemRef{Type: core.ItemTypeContent, ID: "a"}),
		core.NewItem(core.ItemRef{Type: core.ItemTypeContent, ID: "b"}),
		core.NewItem(core.ItemRef{Type: core.ItemTypeContent, ID: "c"}),
	}

	out, err := (&TopN{}).Process(context.Background(), &core.RecommendContext{Limit: 2}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}

	out, err = (&TopN{N: 1}).Process(context.Background(), &core.RecommendContext{Limit: 2}, items)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("explicit N must win, got %d", len(out))
	}
}
