package cli

import (
	"context"

	"hostelmeals/internal/listctl"
)

// pagedFlags are the shared table options every dashboard screen offers.
type pagedFlags struct {
	page   int
	size   int
	search string
}

// drive applies the flags to a controller in the same order a user would:
// density first (which resets the page), then search (which also resets),
// then an explicit page jump, then a load if nothing triggered one.
func drive[T any](ctx context.Context, c *listctl.Controller[T], f pagedFlags) error {
	if f.size != 0 {
		if err := c.SetSize(ctx, f.size); err != nil {
			return err
		}
	}
	if f.search != "" {
		if err := c.SetSearch(ctx, f.search); err != nil {
			return err
		}
	}
	if err := c.Load(ctx); err != nil {
		return err
	}
	if f.page > 1 {
		if err := c.SetPage(ctx, f.page); err != nil {
			return err
		}
	}
	return nil
}
