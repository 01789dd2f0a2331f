package testfixtures

import (
	"context"
	"errors"
	"sync"
	"time"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/session"
	"hostelmeals/internal/utils"
)

const refreshPrefix = "rt:"

// FakeProvider stands in for the hosted identity service. Credentials are
// checked against the fixture backend's seeded accounts, tokens are the
// backend's own JWTs, so a session minted here is accepted end to end.
type FakeProvider struct {
	Backend *Backend

	mu          sync.Mutex
	FailSignOut bool
	FailRefresh bool
	signOuts    int
	profiles    map[string][2]string // email -> {displayName, photoURL}
}

func NewFakeProvider(b *Backend) *FakeProvider {
	return &FakeProvider{Backend: b, profiles: map[string][2]string{}}
}

func (p *FakeProvider) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	_ = ctx
	email = utils.NormalizeEmail(email)
	if !p.Backend.CheckPassword(email, password) {
		return session.Session{}, domain.AuthError{Msg: "email or password is wrong"}
	}
	return p.mint(email), nil
}

func (p *FakeProvider) SignUp(ctx context.Context, email, password, displayName, photoURL string) (session.Session, error) {
	_ = ctx
	email = utils.NormalizeEmail(email)
	p.Backend.mu.Lock()
	_, exists := p.Backend.passwords[email]
	p.Backend.mu.Unlock()
	if exists {
		return session.Session{}, domain.AuthError{Msg: "email already registered"}
	}
	p.Backend.addSignupAccount(displayName, email, password)
	p.mu.Lock()
	p.profiles[email] = [2]string{displayName, photoURL}
	p.mu.Unlock()
	s := p.mint(email)
	s.DisplayName = displayName
	s.PhotoURL = photoURL
	return s, nil
}

func (p *FakeProvider) SignOut(ctx context.Context, accessToken string) error {
	_ = ctx
	_ = accessToken
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOuts++
	if p.FailSignOut {
		return errors.New("revocation endpoint unavailable")
	}
	return nil
}

func (p *FakeProvider) Refresh(ctx context.Context, refreshToken string) (session.Session, error) {
	_ = ctx
	p.mu.Lock()
	fail := p.FailRefresh
	p.mu.Unlock()
	if fail || len(refreshToken) <= len(refreshPrefix) || refreshToken[:len(refreshPrefix)] != refreshPrefix {
		return session.Session{}, errors.New("invalid refresh token")
	}
	return p.mint(refreshToken[len(refreshPrefix):]), nil
}

func (p *FakeProvider) UpdateProfile(ctx context.Context, accessToken, displayName, photoURL string) error {
	_ = ctx
	_ = accessToken
	return nil
}

// SignOutCalls reports how many remote revocations were attempted.
func (p *FakeProvider) SignOutCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signOuts
}

// RefreshToken returns the opaque refresh token for a seeded email.
func (p *FakeProvider) RefreshToken(email string) string {
	return refreshPrefix + utils.NormalizeEmail(email)
}

func (p *FakeProvider) mint(email string) session.Session {
	p.mu.Lock()
	prof := p.profiles[email]
	p.mu.Unlock()
	return session.Session{
		State:        session.StateAuthenticated,
		UID:          "uid-" + email,
		Email:        email,
		DisplayName:  prof[0],
		PhotoURL:     prof[1],
		AccessToken:  p.Backend.Token(email),
		RefreshToken: refreshPrefix + email,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

// addSignupAccount registers a signup with a default user role and
// bronze badge, mirroring the backend upsert's defaults.
func (b *Backend) addSignupAccount(name, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addAccount(name, email, password, domain.RoleUser, domain.BadgeBronze)
}
