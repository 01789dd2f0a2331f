package models

// Page is the numbered-pagination wire shape: the whole result for one
// page plus the collection's total size. Immutable once received; the next
// fetch for the same or a new query supersedes it wholly.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Slice is the cursor-style wire shape used by the public browse feed.
type Slice[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"hasMore"`
}
