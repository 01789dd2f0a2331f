package listctl

import (
	"context"
	"sync"

	"hostelmeals/internal/domain/models"
)

// SliceFetcher loads one continuation slice for the infinite feed.
type SliceFetcher[T any] func(ctx context.Context, q Query) (models.Slice[T], error)

// KeyFunc returns the stable identity of an item, so already-rendered
// entries keep their position and identity as pages are appended.
type KeyFunc[T any] func(T) string

// Feed is the accumulate-on-scroll alternative to discrete pagination,
// used on the public meal browse screen. Pages are appended in order; the
// accumulated sequence is scoped to one filter configuration and is
// discarded whole when search or filters change.
type Feed[T any] struct {
	mu    sync.Mutex
	fetch SliceFetcher[T]
	keyOf KeyFunc[T]

	search  string
	filters map[string]string
	size    int

	items   []T
	seen    map[string]struct{}
	fetched int
	hasMore bool
	epoch   uint64
	loading bool
	lastErr error
}

func NewFeed[T any](fetch SliceFetcher[T], keyOf KeyFunc[T], pageSize int) *Feed[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Feed[T]{
		fetch:   fetch,
		keyOf:   keyOf,
		size:    pageSize,
		filters: map[string]string{},
		seen:    map[string]struct{}{},
		hasMore: true,
	}
}

// Items returns a copy of the flattened accumulated sequence.
func (f *Feed[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

// HasMore mirrors the server's continuation flag from the most recent
// slice; once false no further fetch is attempted.
func (f *Feed[T]) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *Feed[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Feed[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// SetSearch restarts the feed under a new search term.
func (f *Feed[T]) SetSearch(ctx context.Context, term string) error {
	f.mu.Lock()
	if term == f.search {
		f.mu.Unlock()
		return nil
	}
	f.search = term
	f.resetLocked()
	f.mu.Unlock()
	return f.FetchNext(ctx)
}

// SetFilter restarts the feed under a changed filter field (category,
// price range). An empty value removes the field.
func (f *Feed[T]) SetFilter(ctx context.Context, field, value string) error {
	f.mu.Lock()
	if f.filters[field] == value {
		f.mu.Unlock()
		return nil
	}
	if value == "" {
		delete(f.filters, field)
	} else {
		f.filters[field] = value
	}
	f.resetLocked()
	f.mu.Unlock()
	return f.FetchNext(ctx)
}

// resetLocked discards every accumulated page; the next FetchNext starts
// from the first page of the new configuration. The epoch bump makes any
// in-flight append from the old configuration a no-op.
func (f *Feed[T]) resetLocked() {
	f.items = nil
	f.seen = map[string]struct{}{}
	f.fetched = 0
	f.hasMore = true
	f.loading = false
	f.lastErr = nil
	f.epoch++
}

// FetchNext requests the next slice, using the count of already-fetched
// pages as the cursor, and appends the result.
func (f *Feed[T]) FetchNext(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMore || f.loading {
		f.mu.Unlock()
		return nil
	}
	epoch := f.epoch
	q := Query{
		Page:    f.fetched + 1,
		Size:    f.size,
		Search:  f.search,
		Filters: f.filters,
	}.clone()
	f.loading = true
	f.mu.Unlock()

	slice, err := f.fetch(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.epoch != epoch {
		// Filters changed while in flight; this slice belongs to a
		// configuration no longer displayed.
		return nil
	}
	f.loading = false
	if err != nil {
		f.lastErr = err
		return err
	}
	f.lastErr = nil
	for _, item := range slice.Items {
		key := f.keyOf(item)
		if _, dup := f.seen[key]; dup {
			continue
		}
		f.seen[key] = struct{}{}
		f.items = append(f.items, item)
	}
	f.fetched++
	f.hasMore = slice.HasMore
	return nil
}
