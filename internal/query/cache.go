package query

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Result is one memoized fetch outcome. Failed fetches are never cached;
// the zero-value absence of a key means "must fetch".
type Result[T any] struct {
	Data T
	At   time.Time
}

// Cache memoizes fetch results by key. Only the result whose key matches
// the controller's current key may ever be rendered; entries for
// superseded keys just sit here until evicted or invalidated.
type Cache[T any] struct {
	lru *lru.Cache[string, Result[T]]
}

func NewCache[T any](size int) (*Cache[T], error) {
	inner, err := lru.New[string, Result[T]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[T]{lru: inner}, nil
}

func (c *Cache[T]) Get(key string) (Result[T], bool) {
	return c.lru.Get(key)
}

func (c *Cache[T]) Put(key string, data T) {
	c.lru.Add(key, Result[T]{Data: data, At: time.Now()})
}

// Invalidate drops one key, so the next load for it must hit the server.
func (c *Cache[T]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Purge drops everything. Mutation flows purge before refetching: a
// mutation shifts rows and totals on every page, so no memoized page of
// the list survives it. Also used when the signed-in identity changes.
func (c *Cache[T]) Purge() {
	c.lru.Purge()
}
