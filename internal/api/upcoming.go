package api

import (
	"context"
	"fmt"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
)

// UpcomingService manages the not-yet-published meals: premium users like
// them, admins review and publish them into the catalog.
type UpcomingService struct {
	gw *gateway.Gateway
}

func (s *UpcomingService) List(ctx context.Context, q listctl.Query) (models.Page[models.UpcomingMeal], error) {
	var out models.Page[models.UpcomingMeal]
	err := s.gw.Get(ctx, "/upcoming-meals", q.Values(), &out)
	return out, err
}

func (s *UpcomingService) Create(ctx context.Context, in models.MealInput) (models.UpcomingMeal, error) {
	var out models.UpcomingMeal
	err := s.gw.Post(ctx, "/upcoming-meals", in, &out)
	return out, err
}

func (s *UpcomingService) Like(ctx context.Context, id string) error {
	return s.gw.Post(ctx, fmt.Sprintf("/upcoming-meals/%s/like", id), nil, nil)
}

// Publish moves an upcoming meal into the public catalog.
func (s *UpcomingService) Publish(ctx context.Context, id string) error {
	return s.gw.Post(ctx, fmt.Sprintf("/upcoming-meals/%s/publish", id), nil, nil)
}
