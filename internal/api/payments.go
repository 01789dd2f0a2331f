package api

import (
	"context"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
)

// PaymentsService drives the membership checkout and payment history.
// Checkout is two-step: create an intent with the processor, confirm it,
// then the history list is refetched rather than patched locally.
type PaymentsService struct {
	gw *gateway.Gateway
}

func (s *PaymentsService) CreateIntent(ctx context.Context, badge domain.Badge) (models.PaymentIntent, error) {
	var out models.PaymentIntent
	if badge.Price() <= 0 {
		return out, domain.ValidationError{Field: "badge", Msg: "tier is not purchasable"}
	}
	err := s.gw.Post(ctx, "/payments/intent", map[string]string{"badge": string(badge)}, &out)
	return out, err
}

// Confirm settles an intent and records the payment; the backend upgrades
// the account's badge as part of the same mutation.
func (s *PaymentsService) Confirm(ctx context.Context, intentID string) (models.Payment, error) {
	var out models.Payment
	err := s.gw.Post(ctx, "/payments/confirm", map[string]string{"intent_id": intentID}, &out)
	return out, err
}

func (s *PaymentsService) History(ctx context.Context, q listctl.Query) (models.Page[models.Payment], error) {
	var out models.Page[models.Payment]
	err := s.gw.Get(ctx, "/payments/history", q.Values(), &out)
	return out, err
}

func (s *PaymentsService) Get(ctx context.Context, id string) (models.Payment, error) {
	var out models.Payment
	err := s.gw.Get(ctx, "/payments/"+id, nil, &out)
	return out, err
}
