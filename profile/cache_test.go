package profile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/store"
)

// countingSource 统计实际触发的画像计算次数，并用延迟放大并发窗口。
type countingSource struct {
	builds int64
	delay  time.Duration
}

func (s *countingSource) Build(_ context.Context, userID string) (*core.BehaviorProfile, error) {
	atomic.AddInt64(&s.builds, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	p := core.NewBehaviorProfile(userID)
	p.CategoryFreq["Adventure"] = 1
	return p, nil
}

func TestCache_ConcurrentRequestsShareOneBuild(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	mem := store.NewMemoryStore()
	defer mem.Close()

	cache := NewCache(src, mem, time.Minute)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := cache.Get(context.Background(), "u1")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			if p.UserID != "u1" {
				t.Errorf("UserID = %q", p.UserID)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&src.builds); got != 1 {
		t.Errorf("builds = %d, want 1 (singleflight)", got)
	}
}

func TestCache_HitAfterBuild(t *testing.T) {
	src := &countingSource{}
	mem := store.NewMemoryStore()
	defer mem.Close()

	cache := NewCache(src, mem, time.Minute)
	ctx := context.Background()

	if _, err := cache.Get(ctx, "u1"); err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if _, err := cache.Get(ctx, "u1"); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if src.builds != 1 {
		t.Errorf("builds = %d, want 1 (second request must hit cache)", src.builds)
	}
}

func TestCache_InvalidateForcesRebuild(t *testing.T) {
	src := &countingSource{}
	mem := store.NewMemoryStore()
	defer mem.Close()

	cache := NewCache(src, mem, time.Minute)
	ctx := context.Background()

	if _, err := cache.Get(ctx, "u1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := cache.OnActivity(ctx, core.ActivityEvent{UserID: "u1"}); err != nil {
		t.Fatalf("OnActivity: %v", err)
	}
	if _, err := cache.Get(ctx, "u1"); err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if src.builds != 2 {
		t.Errorf("builds = %d, want 2 (invalidate must force rebuild)", src.builds)
	}
}

func TestCache_CallerCancellationDoesNotKillBuild(t *testing.T) {
	src := &countingSource{delay: 50 * time.Millisecond}
	mem := store.NewMemoryStore()
	defer mem.Close()

	cache := NewCache(src, mem, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if _, err := cache.Get(ctx, "u1"); err == nil {
		t.Fatal("cancelled Get must return an error")
	}

	// 在途计算在脱离取消链的 context 上完成并写入缓存
	time.Sleep(100 * time.Millisecond)
	if _, err := cache.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("Get after cancelled build: %v", err)
	}
	if src.builds != 1 {
		t.Errorf("builds = %d, want 1 (build survives caller cancellation)", src.builds)
	}
}
