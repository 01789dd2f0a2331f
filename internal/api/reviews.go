package api

import (
	"context"
	"fmt"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
)

// ReviewsService covers the review CRUD on meal detail plus the "my
// reviews" and admin "all reviews" tables.
type ReviewsService struct {
	gw *gateway.Gateway
}

func (s *ReviewsService) ForMeal(ctx context.Context, mealID string, q listctl.Query) (models.Page[models.Review], error) {
	var out models.Page[models.Review]
	err := s.gw.Get(ctx, fmt.Sprintf("/meals/%s/reviews", mealID), q.Values(), &out)
	return out, err
}

func (s *ReviewsService) Mine(ctx context.Context, q listctl.Query) (models.Page[models.Review], error) {
	var out models.Page[models.Review]
	err := s.gw.Get(ctx, "/reviews/mine", q.Values(), &out)
	return out, err
}

// All is the admin table, sortable by likes or reviews count.
func (s *ReviewsService) All(ctx context.Context, q listctl.Query) (models.Page[models.Review], error) {
	var out models.Page[models.Review]
	err := s.gw.Get(ctx, "/reviews", q.Values(), &out)
	return out, err
}

func (s *ReviewsService) Create(ctx context.Context, in models.ReviewInput) (models.Review, error) {
	var out models.Review
	err := s.gw.Post(ctx, "/reviews", in, &out)
	return out, err
}

func (s *ReviewsService) Update(ctx context.Context, id string, in models.ReviewInput) error {
	return s.gw.Patch(ctx, fmt.Sprintf("/reviews/%s", id), in, nil)
}

func (s *ReviewsService) Delete(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/reviews/%s", id))
}
