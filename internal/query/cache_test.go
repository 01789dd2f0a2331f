package query

import "testing"

func TestCachePutGet(t *testing.T) {
	c, err := NewCache[int](4)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	if _, ok := c.Get("page=1&size=10"); ok {
		t.Fatalf("empty cache reported a hit")
	}
	c.Put("page=1&size=10", 42)
	res, ok := c.Get("page=1&size=10")
	if !ok || res.Data != 42 {
		t.Fatalf("hit = %v, data = %d", ok, res.Data)
	}
	if res.At.IsZero() {
		t.Fatalf("result has no timestamp")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := NewCache[string](4)
	c.Put("k", "stale")
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("invalidated key still present")
	}
}

func TestCachePurge(t *testing.T) {
	c, _ := NewCache[string](4)
	c.Put("a", "1")
	c.Put("b", "2")
	c.Purge()
	if _, ok := c.Get("a"); ok {
		t.Fatalf("purged cache still holds entries")
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c, _ := NewCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("lru cache over capacity kept the oldest entry")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("newest entry missing")
	}
}
