// Package api exposes one typed service per screen family. Every service
// talks only through the gateway, so the global auth policy applies to
// every call, and every mutation is fire-and-refetch: the caller triggers
// a list refresh instead of splicing rows locally.
package api

import "hostelmeals/internal/gateway"

// Client bundles the resource services for wiring convenience.
type Client struct {
	Meals    *MealsService
	Upcoming *UpcomingService
	Requests *RequestsService
	Reviews  *ReviewsService
	Payments *PaymentsService
	Users    *UsersService
}

func New(gw *gateway.Gateway) *Client {
	return &Client{
		Meals:    &MealsService{gw: gw},
		Upcoming: &UpcomingService{gw: gw},
		Requests: &RequestsService{gw: gw},
		Reviews:  &ReviewsService{gw: gw},
		Payments: &PaymentsService{gw: gw},
		Users:    &UsersService{gw: gw},
	}
}
