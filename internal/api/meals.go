package api

import (
	"context"
	"fmt"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
)

// MealsService covers the public browse feed and the admin catalog.
type MealsService struct {
	gw *gateway.Gateway
}

// List is the numbered-pagination variant used by the admin "all meals"
// table; supports search plus category/price filters and sort fields.
func (s *MealsService) List(ctx context.Context, q listctl.Query) (models.Page[models.Meal], error) {
	var out models.Page[models.Meal]
	err := s.gw.Get(ctx, "/meals", q.Values(), &out)
	return out, err
}

// Browse is the cursor-style variant feeding the public infinite feed.
func (s *MealsService) Browse(ctx context.Context, q listctl.Query) (models.Slice[models.Meal], error) {
	var out models.Slice[models.Meal]
	err := s.gw.Get(ctx, "/meals/browse", q.Values(), &out)
	return out, err
}

func (s *MealsService) Get(ctx context.Context, id string) (models.Meal, error) {
	var out models.Meal
	err := s.gw.Get(ctx, "/meals/"+id, nil, &out)
	return out, err
}

func (s *MealsService) Create(ctx context.Context, in models.MealInput) (models.Meal, error) {
	var out models.Meal
	err := s.gw.Post(ctx, "/meals", in, &out)
	return out, err
}

func (s *MealsService) Update(ctx context.Context, id string, in models.MealInput) error {
	return s.gw.Patch(ctx, fmt.Sprintf("/meals/%s", id), in, nil)
}

func (s *MealsService) Delete(ctx context.Context, id string) error {
	return s.gw.Delete(ctx, fmt.Sprintf("/meals/%s", id))
}

// Like toggles the signed-in user's like on a published meal.
func (s *MealsService) Like(ctx context.Context, id string) error {
	return s.gw.Post(ctx, fmt.Sprintf("/meals/%s/like", id), nil, nil)
}
