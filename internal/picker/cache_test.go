package picker

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestPreviewCache_StoreAndLookup(t *testing.T) {
	cache := NewPreviewCache(5 * time.Minute)

	cache.Store("ls -la '/src/api'", "README.md\ngo.mod\n", false)

	got, failed, ok := cache.Lookup("ls -la '/src/api'")
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if got != "README.md\ngo.mod\n" {
		t.Errorf("output: got %q", got)
	}
	if failed {
		t.Error("failed: got true, want false")
	}
}

func TestPreviewCache_DifferentCommand(t *testing.T) {
	cache := NewPreviewCache(5 * time.Minute)
	cache.Store("ls /a", "a", false)

	if _, _, ok := cache.Lookup("ls /b"); ok {
		t.Error("expected cache miss for a different command, got hit")
	}
}

func TestPreviewCache_KeepsFailures(t *testing.T) {
	cache := NewPreviewCache(5 * time.Minute)
	cache.Store("ls /missing", "ls: /missing: No such file or directory", true)

	out, failed, ok := cache.Lookup("ls /missing")
	if !ok || !failed || out == "" {
		t.Errorf("got %q, failed=%v, ok=%v", out, failed, ok)
	}
}

func TestPreviewCache_TTLExpiry(t *testing.T) {
	cache := NewPreviewCache(1 * time.Millisecond)
	cache.Store("tmux capture-pane -ep -t '=dev'", "prompt $", false)

	time.Sleep(5 * time.Millisecond)

	if _, _, ok := cache.Lookup("tmux capture-pane -ep -t '=dev'"); ok {
		t.Error("expected cache miss after TTL expiry, got hit")
	}
}

func TestPreviewCache_ZeroTTLDisables(t *testing.T) {
	cache := NewPreviewCache(0)
	cache.Store("ls", "x", false)

	if _, _, ok := cache.Lookup("ls"); ok {
		t.Error("expected miss with TTL=0, got hit")
	}
	if s := cache.Stats(); s.Entries != 0 {
		t.Errorf("Entries: got %d, want 0", s.Entries)
	}
}

func TestPreviewCache_Stats(t *testing.T) {
	cache := NewPreviewCache(5 * time.Minute)
	cache.Store("a", "1", false)
	cache.Store("b", "2", false)

	cache.Lookup("a")
	cache.Lookup("a")
	cache.Lookup("c")

	s := cache.Stats()
	if s.Entries != 2 {
		t.Errorf("Entries: got %d, want 2", s.Entries)
	}
	if s.Hits != 2 {
		t.Errorf("Hits: got %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses: got %d, want 1", s.Misses)
	}
}

func TestPreviewCache_NilSafe(t *testing.T) {
	var cache *PreviewCache
	cache.Store("ls", "x", false)
	if _, _, ok := cache.Lookup("ls"); ok {
		t.Error("nil cache should always miss")
	}
	if s := cache.Stats(); s != (CacheStats{}) {
		t.Errorf("nil cache stats: got %+v", s)
	}
}

func TestPreviewCache_ConcurrentAccess(t *testing.T) {
	cache := NewPreviewCache(5 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cmd := fmt.Sprintf("ls /dir-%d", n%10)
			cache.Store(cmd, "out", false)
			cache.Lookup(cmd)
			cache.Stats()
		}(i)
	}
	wg.Wait()

	if s := cache.Stats(); s.Entries > 10 {
		t.Errorf("Entries: got %d, want at most 10", s.Entries)
	}
}
