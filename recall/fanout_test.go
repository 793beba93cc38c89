package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
)

type stubSource struct {
	name  string
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func stubItem(id string) *core.Item {
	return core.NewItem(core.ItemRef{Type: core.ItemTypeContent, ID: id})
}

func TestFanout_MergesAllSources(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "a", items: []*core.Item{stubItem("1"), stubItem("2")}},
		&stubSource{name: "b", items: []*core.Item{stubItem("3")}},
	}}

	items, err := n.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want 3 (union, dedupe happens in fusion)", len(items))
	}
	for _, it := range items {
		if _, ok := it.Labels["recall_priority"]; !ok {
			t.Errorf("item %s missing recall_priority label", it.Ref.Key())
		}
	}
}

func TestFanout_FailedSourceOnlyShrinksResult(t *testing.T) {
	n := &Fanout{Sources: []Source{
		&stubSource{name: "broken", err: errors.New("down")},
		&stubSource{name: "ok", items: []*core.Item{stubItem("1")}},
	}}

	items, err := n.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("one failed source must not abort the batch: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestFanout_SlowSourceTimesOut(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "slow", delay: time.Second, items: []*core.Item{stubItem("never")}},
			&stubSource{name: "fast", items: []*core.Item{stubItem("1")}},
		},
		Timeout: 20 * time.Millisecond,
	}

	items, err := n.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(items) != 1 || items[0].Ref.ID != "1" {
		t.Errorf("items = %+v, want only the fast source's item", items)
	}
}
