package listctl

import (
	"context"
	"sync"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/query"
)

const (
	// DefaultPageSize matches the densest screens' initial render.
	DefaultPageSize = 10
	cacheSize       = 32
)

// Fetcher loads one page for a query; it is the only backend touchpoint a
// controller has.
type Fetcher[T any] func(ctx context.Context, q Query) (models.Page[T], error)

// Controller drives server-side pagination for one list screen. All the
// dashboard tables (manage users, all meals, requested meals, reviews,
// payment history, serve queue, upcoming meals) instantiate this with
// their own fetcher and filters.
//
// Two rules hold everywhere:
//   - changing Size, Search or any filter resets Page to 1 before the
//     next fetch, so a now-invalid page is never requested;
//   - a response is applied only while its fetch key and sequence are
//     still current, so a late response can never clobber a newer page.
type Controller[T any] struct {
	mu    sync.Mutex
	q     Query
	seq   uint64
	fetch Fetcher[T]
	cache *query.Cache[models.Page[T]]

	items   []T
	total   int
	loading bool
	lastErr error
}

func New[T any](fetch Fetcher[T]) *Controller[T] {
	cache, err := query.NewCache[models.Page[T]](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Controller[T]{
		q:     Query{Page: 1, Size: DefaultPageSize, Filters: map[string]string{}},
		fetch: fetch,
		cache: cache,
	}
}

// Query returns a copy of the current list state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.clone()
}

// Items returns a copy of the rows currently authoritative for rendering.
// During a refetch the previous page's rows stay visible (stale) until
// replaced; callers get their own slice so they cannot edit the state.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last fetch failure. A failed fetch never clears rows
// from the previous successful one.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Page
}

func (c *Controller[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Size
}

// TotalPages is ceil(totalCount / pageSize); zero when the collection is
// empty, so an empty list renders no page buttons at all.
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalPages(c.total, c.q.Size)
}

func totalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageNumbers lists 1..TotalPages for rendering the page control.
func (c *Controller[T]) PageNumbers() []int {
	n := c.TotalPages()
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (c *Controller[T]) HasPrev() bool { return c.Page() > 1 }

func (c *Controller[T]) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Page < totalPages(c.total, c.q.Size)
}

// SetPage jumps to a page. Out-of-range values are clamped into 1..n.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if n := totalPages(c.total, c.q.Size); n > 0 && page > n {
		page = n
	}
	if page == c.q.Page {
		c.mu.Unlock()
		return nil
	}
	c.q.Page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Controller[T]) Next(ctx context.Context) error {
	if !c.HasNext() {
		return nil
	}
	return c.SetPage(ctx, c.Page()+1)
}

func (c *Controller[T]) Prev(ctx context.Context) error {
	if !c.HasPrev() {
		return nil
	}
	return c.SetPage(ctx, c.Page()-1)
}

// SetSize changes the items-per-page density. The page index always
// resets to 1 first: the old index may not exist at the new density.
func (c *Controller[T]) SetSize(ctx context.Context, size int) error {
	if !domain.ValidPageSize(size) {
		return domain.ValidationError{Field: "page_size", Msg: "not an allowed page size"}
	}
	c.mu.Lock()
	if size == c.q.Size {
		c.mu.Unlock()
		return nil
	}
	c.q.Size = size
	c.q.Page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetSearch replaces the search term and resets to page 1.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	if term == c.q.Search {
		c.mu.Unlock()
		return nil
	}
	c.q.Search = term
	c.q.Page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetFilter replaces one filter field and resets to page 1. An empty
// value removes the field.
func (c *Controller[T]) SetFilter(ctx context.Context, field, value string) error {
	c.mu.Lock()
	if c.q.Filters == nil {
		c.q.Filters = map[string]string{}
	}
	if c.q.Filters[field] == value {
		c.mu.Unlock()
		return nil
	}
	if value == "" {
		delete(c.q.Filters, field)
	} else {
		c.q.Filters[field] = value
	}
	c.q.Page = 1
	c.mu.Unlock()
	return c.Load(ctx)
}

// Refresh refetches after a mutation (delete/update/serve/publish): one
// request, then one refetch, no client-side row splicing. The whole memo
// is dropped, not just the current key: a mutation shifts rows and totals
// on every page of the list, so any previously visited page is stale too.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.cache.Purge()
	c.mu.Unlock()
	return c.Load(ctx)
}

// Load fetches the page for the current query. Safe to call from
// overlapping goroutines: each call captures its key and sequence, and a
// completion applies only while both are still current.
func (c *Controller[T]) Load(ctx context.Context) error {
	for {
		c.mu.Lock()
		c.seq++
		seq := c.seq
		q := c.q.clone()
		key := q.Key()
		if memo, ok := c.cache.Get(key); ok {
			clamped := c.applyLocked(seq, key, memo.Data)
			if clamped {
				// The clamped page must come from the server, not from a
				// memo written before the collection shrank.
				c.cache.Invalidate(c.q.Key())
			}
			c.mu.Unlock()
			if clamped {
				continue
			}
			return nil
		}
		c.loading = true
		c.mu.Unlock()

		page, err := c.fetch(ctx, q)

		c.mu.Lock()
		if c.seq != seq || c.q.Key() != key {
			// Superseded while in flight; the newer call owns the state.
			c.mu.Unlock()
			return nil
		}
		c.loading = false
		if err != nil {
			// Keep the previously rendered rows intact.
			c.lastErr = err
			c.mu.Unlock()
			return err
		}
		c.lastErr = nil
		c.cache.Put(key, page)
		clamped := c.applyLocked(seq, key, page)
		if clamped {
			c.cache.Invalidate(c.q.Key())
		}
		c.mu.Unlock()
		if clamped {
			continue
		}
		return nil
	}
}

// applyLocked installs a page result and reports whether the page index
// had to be clamped because the collection shrank beneath it (a delete
// emptying the last page). When it clamps, the caller refetches.
func (c *Controller[T]) applyLocked(seq uint64, key string, page models.Page[T]) bool {
	if c.seq != seq || c.q.Key() != key {
		return false
	}
	c.items = page.Items
	c.total = page.TotalCount
	if n := totalPages(c.total, c.q.Size); n > 0 && c.q.Page > n {
		c.q.Page = n
		return true
	}
	return false
}
