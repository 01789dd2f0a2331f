package api

import (
	"context"
	"fmt"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/listctl"
	"hostelmeals/internal/session"
	"hostelmeals/internal/utils"
)

// UsersService covers the admin manage-users table, the signed-in
// account lookup, and the idempotent registration upsert.
type UsersService struct {
	gw *gateway.Gateway
}

// Me returns the backend account for the signed-in identity, including
// badge and role.
func (s *UsersService) Me(ctx context.Context) (models.Account, error) {
	var out models.Account
	err := s.gw.Get(ctx, "/users/me", nil, &out)
	return out, err
}

// List is the admin table, searchable by name or email.
func (s *UsersService) List(ctx context.Context, q listctl.Query) (models.Page[models.Account], error) {
	var out models.Page[models.Account]
	err := s.gw.Get(ctx, "/users", q.Values(), &out)
	return out, err
}

// MakeAdmin promotes an account; the admin table refetches afterwards.
func (s *UsersService) MakeAdmin(ctx context.Context, id string) error {
	return s.gw.Patch(ctx, fmt.Sprintf("/users/%s/admin", id), nil, nil)
}

// Upsert registers the identity with the backend. Idempotent: replaying
// it for a known email is a no-op server-side. The session store fires it
// on every transition to an authenticated session.
func (s *UsersService) Upsert(ctx context.Context, sess session.Session) error {
	in := models.AccountUpsert{
		Name:     sess.DisplayName,
		Email:    utils.NormalizeEmail(sess.Email),
		PhotoURL: sess.PhotoURL,
	}
	return s.gw.Put(ctx, "/users", in, nil)
}
