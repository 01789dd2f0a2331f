package listctl

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"hostelmeals/internal/domain/models"
)

// feedSource serves fixed-size slices of a synthetic collection and can
// vary contents by the active category filter.
type feedSource struct {
	mu    sync.Mutex
	total int
	calls int
}

func (f *feedSource) fetch(ctx context.Context, q Query) (models.Slice[row], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	prefix := q.Filters["category"]
	if prefix == "" {
		prefix = "all"
	}
	start := (q.Page - 1) * q.Size
	items := []row{}
	for i := start; i < f.total && i < start+q.Size; i++ {
		items = append(items, row{ID: prefix + "-" + strconv.Itoa(i+1)})
	}
	return models.Slice[row]{Items: items, HasMore: start+q.Size < f.total}, nil
}

func TestFeedAccumulatesInOrder(t *testing.T) {
	src := &feedSource{total: 7}
	f := NewFeed(src.fetch, func(r row) string { return r.ID }, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := f.FetchNext(ctx); err != nil {
			t.Fatalf("FetchNext %d failed: %v", i+1, err)
		}
	}
	items := f.Items()
	if len(items) != 7 {
		t.Fatalf("expected 7 accumulated items, got %d", len(items))
	}
	for i, it := range items {
		want := "all-" + strconv.Itoa(i+1)
		if it.ID != want {
			t.Fatalf("item %d = %s, want %s (order must be append-only)", i, it.ID, want)
		}
	}
	if f.HasMore() {
		t.Fatalf("hasMore must be false after the final slice")
	}
}

func TestFeedStopsWhenExhausted(t *testing.T) {
	src := &feedSource{total: 2}
	f := NewFeed(src.fetch, func(r row) string { return r.ID }, 5)
	ctx := context.Background()

	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	calls := src.calls
	// Further scroll triggers are no-ops once hasMore is false.
	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext after exhaustion errored: %v", err)
	}
	if src.calls != calls {
		t.Fatalf("feed fetched past the end of the collection")
	}
}

func TestFeedFilterChangeDiscardsAccumulated(t *testing.T) {
	src := &feedSource{total: 9}
	f := NewFeed(src.fetch, func(r row) string { return r.ID }, 3)
	ctx := context.Background()

	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	if len(f.Items()) != 6 {
		t.Fatalf("expected 6 items before filter change, got %d", len(f.Items()))
	}

	if err := f.SetFilter(ctx, "category", "lunch"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	items := f.Items()
	if len(items) != 3 {
		t.Fatalf("filter change must restart from the first page, got %d items", len(items))
	}
	for _, it := range items {
		if it.ID[:5] != "lunch" {
			t.Fatalf("old configuration's items survived the reset: %s", it.ID)
		}
	}
}

// A slice still in flight when the filters change belongs to a
// configuration no longer displayed and must be dropped on arrival.
func TestFeedStaleSliceDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	fetch := func(ctx context.Context, q Query) (models.Slice[row], error) {
		if q.Filters["category"] == "" {
			once.Do(func() { close(started) })
			<-release
			return models.Slice[row]{Items: []row{{ID: "old-1"}}, HasMore: true}, nil
		}
		return models.Slice[row]{Items: []row{{ID: "new-1"}}, HasMore: false}, nil
	}

	f := NewFeed(fetch, func(r row) string { return r.ID }, 10)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.FetchNext(ctx)
	}()
	<-started

	if err := f.SetFilter(ctx, "category", "dinner"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	close(release)
	<-done

	items := f.Items()
	if len(items) != 1 || items[0].ID != "new-1" {
		t.Fatalf("stale slice leaked into the new configuration: %+v", items)
	}
	if f.HasMore() {
		t.Fatalf("hasMore must reflect the new configuration's slice")
	}
}

func TestFeedItemsReturnsACopy(t *testing.T) {
	src := &feedSource{total: 2}
	f := NewFeed(src.fetch, func(r row) string { return r.ID }, 5)
	if err := f.FetchNext(context.Background()); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	got := f.Items()
	got[0].ID = "mutated"
	if f.Items()[0].ID != "all-1" {
		t.Fatalf("editing the returned slice leaked into feed state")
	}
}

func TestFeedDeduplicatesByKey(t *testing.T) {
	fetch := func(ctx context.Context, q Query) (models.Slice[row], error) {
		// The server repeats the boundary item across adjacent slices.
		if q.Page == 1 {
			return models.Slice[row]{Items: []row{{ID: "a"}, {ID: "b"}}, HasMore: true}, nil
		}
		return models.Slice[row]{Items: []row{{ID: "b"}, {ID: "c"}}, HasMore: false}, nil
	}
	f := NewFeed(fetch, func(r row) string { return r.ID }, 2)
	ctx := context.Background()
	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	if err := f.FetchNext(ctx); err != nil {
		t.Fatalf("FetchNext failed: %v", err)
	}
	items := f.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 unique items, got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Fatalf("item %d = %s, want %s", i, items[i].ID, want)
		}
	}
}
