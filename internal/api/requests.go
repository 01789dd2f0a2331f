package api

import (
	"context"
	"fmt"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
)

// RequestsService handles meal requests: students file and cancel them,
// admins work the serve queue.
type RequestsService struct {
	gw *gateway.Gateway
}

// Create files a request for a meal. The backend enforces the badge gate;
// callers should pre-check Badge.CanRequestMeals for a friendlier error.
func (s *RequestsService) Create(ctx context.Context, mealID string) (models.MealRequest, error) {
	var out models.MealRequest
	err := s.gw.Post(ctx, "/requests", map[string]string{"meal_id": mealID}, &out)
	return out, err
}

// Mine lists the signed-in user's own requests.
func (s *RequestsService) Mine(ctx context.Context, q listctl.Query) (models.Page[models.MealRequest], error) {
	var out models.Page[models.MealRequest]
	err := s.gw.Get(ctx, "/requests/mine", q.Values(), &out)
	return out, err
}

// Queue is the admin serve queue, searchable by requester name or email.
func (s *RequestsService) Queue(ctx context.Context, q listctl.Query) (models.Page[models.MealRequest], error) {
	var out models.Page[models.MealRequest]
	err := s.gw.Get(ctx, "/requests", q.Values(), &out)
	return out, err
}

func (s *RequestsService) Cancel(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/requests/%s", id))
}

// Serve marks a pending request delivered.
func (s *RequestsService) Serve(ctx context.Context, id string) error {
	return s.gw.Patch(ctx, fmt.Sprintf("/requests/%s/serve", id), nil, nil)
}
