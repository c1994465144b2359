package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/HaoYuet/HeadlineHub/internal/collector"
	"github.com/HaoYuet/HeadlineHub/internal/processor"
	"github.com/HaoYuet/HeadlineHub/internal/storage"
)

// stubResolver 按 sourceID 返回预设结果，并记录调用顺序
type stubResolver struct {
	mu      sync.Mutex
	results map[string]processor.SourceResult
	calls   []string
}

func (r *stubResolver) Resolve(cfg collector.SourceConfig) processor.SourceResult {
	r.mu.Lock()
	r.calls = append(r.calls, cfg.ID)
	r.mu.Unlock()

	if res, ok := r.results[cfg.ID]; ok {
		return res
	}
	return processor.Failure(errors.New("unreachable"), time.Now())
}

func (r *stubResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

var testSources = []collector.SourceConfig{
	{ID: "a", Name: "源 A", Endpoints: []string{"https://a.example/feed"}},
	{ID: "b", Name: "源 B", Endpoints: []string{"https://b.example/feed"}},
	{ID: "c", Name: "源 C", Endpoints: []string{"https://c.example/feed"}},
}

func newTestScheduler(t *testing.T, r Resolver) (*Scheduler, *storage.Store) {
	t.Helper()
	store := storage.NewStore()
	s, err := New("@every 5m", testSources, r, store)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s, store
}

func TestRunCycleResolvesEverySourceAndIsolatesFailures(t *testing.T) {
	now := time.Now()
	stub := &stubResolver{results: map[string]processor.SourceResult{
		"a": processor.SourceResult{Status: processor.StatusSuccess, UpdateLabel: "just updated", FetchedAt: now},
		"c": processor.SourceResult{Status: processor.StatusSuccess, UpdateLabel: "just updated", FetchedAt: now},
	}}
	s, store := newTestScheduler(t, stub)

	s.RunCycle()

	if stub.callCount() != len(testSources) {
		t.Fatalf("resolved %d sources, want %d", stub.callCount(), len(testSources))
	}
	snap, updatedAt := store.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("store holds %d results, want 3", len(snap))
	}
	if snap["b"].Status != processor.StatusFailure {
		t.Fatalf("failing source must land as failure, got %+v", snap["b"])
	}
	if snap["a"].Status != processor.StatusSuccess || snap["c"].Status != processor.StatusSuccess {
		t.Fatalf("sibling sources must be unaffected by b's failure")
	}
	if updatedAt.IsZero() {
		t.Fatalf("cycle completion must bump the overall timestamp")
	}
}

func TestRetrySourceUnknownID(t *testing.T) {
	s, _ := newTestScheduler(t, &stubResolver{})
	if err := s.RetrySource("nope"); err == nil {
		t.Fatalf("unknown source must return an error")
	}
}

func TestRetrySourceWritesUnderFreshSequence(t *testing.T) {
	now := time.Now()
	stub := &stubResolver{results: map[string]processor.SourceResult{
		"a": processor.SourceResult{Status: processor.StatusSuccess, FetchedAt: now},
	}}
	s, store := newTestScheduler(t, stub)

	s.RunCycle() // 轮次 1：a 成功，b/c 失败

	// 手动重试 b，这次成功；占用轮次 2
	stub.mu.Lock()
	stub.results["b"] = processor.SourceResult{Status: processor.StatusSuccess, FetchedAt: now}
	stub.mu.Unlock()
	if err := s.RetrySource("b"); err != nil {
		t.Fatalf("RetrySource error: %v", err)
	}

	got, ok := store.Get("b")
	if !ok || got.Status != processor.StatusSuccess {
		t.Fatalf("retry result not stored: %+v", got)
	}

	// 轮次 1 的迟到写入不能覆盖轮次 2 的重试结果
	if store.Put("b", 1, processor.SourceResult{Status: processor.StatusFailure, FetchedAt: now}) {
		t.Fatalf("stale cycle-1 write must be rejected after retry")
	}
	got, _ = store.Get("b")
	if got.Status != processor.StatusSuccess {
		t.Fatalf("retry result was clobbered by a stale cycle")
	}
}

func TestHasSource(t *testing.T) {
	s, _ := newTestScheduler(t, &stubResolver{})
	if !s.HasSource("a") {
		t.Fatalf("registered source not found")
	}
	if s.HasSource("zzz") {
		t.Fatalf("unregistered source reported as present")
	}
}

func TestNewRejectsBadCronSpec(t *testing.T) {
	if _, err := New("not a cron spec", testSources, &stubResolver{}, storage.NewStore()); err == nil {
		t.Fatalf("invalid cron spec must fail fast")
	}
}
