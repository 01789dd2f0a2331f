package session

import (
	"context"
	"time"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/utils"
)

// Metadata keys the app stores alongside the identity record.
const (
	metaDisplayName = "display_name"
	metaPhotoURL    = "photo_url"
)

// GotrueProvider adapts the Supabase GoTrue client to the Provider
// contract the store expects.
type GotrueProvider struct {
	client gotrue.Client
}

func NewGotrueProvider(projectRef, anonKey string) *GotrueProvider {
	return &GotrueProvider{client: gotrue.New(projectRef, anonKey)}
}

func (p *GotrueProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	_ = ctx
	resp, err := p.client.SignInWithEmailPassword(utils.NormalizeEmail(email), password)
	if err != nil {
		return Session{}, domain.AuthError{Msg: "email or password is wrong", Err: err}
	}
	return sessionFromToken(resp.AccessToken, resp.RefreshToken, resp.ExpiresIn, resp.User), nil
}

func (p *GotrueProvider) SignUp(ctx context.Context, email, password, displayName, photoURL string) (Session, error) {
	_ = ctx
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    utils.NormalizeEmail(email),
		Password: password,
		Data: map[string]interface{}{
			metaDisplayName: displayName,
			metaPhotoURL:    photoURL,
		},
	})
	if err != nil {
		return Session{}, domain.AuthError{Msg: "sign-up rejected", Err: err}
	}
	return sessionFromToken(resp.AccessToken, resp.RefreshToken, resp.ExpiresIn, resp.User), nil
}

func (p *GotrueProvider) SignOut(ctx context.Context, accessToken string) error {
	_ = ctx
	return p.client.WithToken(accessToken).Logout()
}

func (p *GotrueProvider) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	_ = ctx
	resp, err := p.client.RefreshToken(refreshToken)
	if err != nil {
		return Session{}, err
	}
	return sessionFromToken(resp.AccessToken, resp.RefreshToken, resp.ExpiresIn, resp.User), nil
}

func (p *GotrueProvider) UpdateProfile(ctx context.Context, accessToken, displayName, photoURL string) error {
	_ = ctx
	data := map[string]interface{}{metaDisplayName: displayName}
	if photoURL != "" {
		data[metaPhotoURL] = photoURL
	}
	_, err := p.client.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{Data: data})
	return err
}

func sessionFromToken(access, refresh string, expiresIn int, user types.User) Session {
	expires := time.Now().Add(time.Duration(expiresIn) * time.Second)
	// Prefer the exp claim when the token carries one; ExpiresIn is only
	// accurate at issue time.
	if at, err := TokenExpiry(access); err == nil {
		expires = at
	}
	return Session{
		State:        StateAuthenticated,
		UID:          user.ID.String(),
		Email:        utils.NormalizeEmail(user.Email),
		DisplayName:  metaString(user.UserMetadata, metaDisplayName),
		PhotoURL:     metaString(user.UserMetadata, metaPhotoURL),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
	}
}

func metaString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
