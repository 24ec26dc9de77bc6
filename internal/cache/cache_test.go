package cache

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []int
	c := New[int, string](2, func(k int, _ string) { evicted = append(evicted, k) })

	c.Set(1, "a")
	c.Set(2, "b")
	if _, ok := c.Get(1); !ok {
		t.Fatal("expected hit for 1")
	}
	c.Set(3, "c") // 2 is now least recently used

	if diff := cmp.Diff([]int{2}, evicted); diff != "" {
		t.Errorf("evicted mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Get(2); ok {
		t.Error("2 should have been evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0, nil)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}
	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	errBoom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed create must not be cached")
	}

	st := c.Stats()
	want := Stats{Len: 1, Capacity: 0, Hits: 2, Misses: 3}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	evicted := map[int]bool{}
	c := New[int, int](0, func(k, _ int) { evicted[k] = true })
	for i := range 4 {
		c.Set(i, i*i)
	}
	if !c.Delete(1) || c.Delete(1) {
		t.Error("Delete should report presence exactly once")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	for i := range 4 {
		if !evicted[i] {
			t.Errorf("key %d not passed to onEvict", i)
		}
	}
}

func TestCacheSetReplaces(t *testing.T) {
	var evicted []string
	c := New[int, string](4, func(_ int, v string) { evicted = append(evicted, v) })
	c.Set(1, "old")
	c.Set(1, "new")
	if v, _ := c.Get(1); v != "new" {
		t.Errorf("Get = %q, want new", v)
	}
	if diff := cmp.Diff([]string{"old"}, evicted); diff != "" {
		t.Errorf("evicted mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsHitRate(t *testing.T) {
	if (Stats{}).HitRate() != 0 {
		t.Error("empty stats should have zero hit rate")
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", got)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[int, int](1024, nil)
	for i := range 1024 {
		c.Set(i, i)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i & 1023)
	}
}
