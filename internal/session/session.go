package session

import (
	"context"
	"sync"
	"time"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/utils"
)

// State is the session lifecycle. Unknown means "still restoring"; every
// consumer must treat it as loading, never as signed-out.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

// Session is the single source of truth for "who is signed in". It is
// replaced as a whole value on every transition so readers never observe
// a half-updated composite.
type Session struct {
	State        State
	UID          string
	DisplayName  string
	Email        string
	PhotoURL     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Provider abstracts the third-party identity service.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password, displayName, photoURL string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	UpdateProfile(ctx context.Context, accessToken, displayName, photoURL string) error
}

// Store owns the one mutable Session slot. It is the only writer; everyone
// else reads through Current.
type Store struct {
	mu        sync.RWMutex
	cur       Session
	provider  Provider
	register  func(context.Context, Session) error
	listeners []func(Session)
}

func NewStore(provider Provider) *Store {
	return &Store{
		provider: provider,
		cur:      Session{State: StateUnknown},
	}
}

// SetRegistrar installs the idempotent backend account upsert fired on
// every transition to an authenticated session. Wired late because the
// request gateway that carries the upsert needs the store first.
func (s *Store) SetRegistrar(fn func(context.Context, Session) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.register = fn
}

// Subscribe registers a listener called after every replacement of the
// session slot. Listeners run outside the store lock.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Loading reports whether the session is still being restored.
func (s *Store) Loading() bool {
	return s.Current().State == StateUnknown
}

// Restore exchanges a persisted refresh token for a live session. A
// missing or rejected token resolves to Anonymous, never to an error the
// caller has to handle.
func (s *Store) Restore(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		s.replace(Session{State: StateAnonymous})
		return
	}
	sess, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		utils.LogEvent("", "session", "restore", "refresh rejected: "+err.Error())
		s.replace(Session{State: StateAnonymous})
		return
	}
	s.replace(sess)
	s.registerAccount(sess)
}

// SignIn authenticates and publishes the new session. Credential
// rejections come back as domain.AuthError for inline display.
func (s *Store) SignIn(ctx context.Context, email, password string) (Session, error) {
	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if domain.IsAuth(err) {
			return Session{}, err
		}
		return Session{}, domain.AuthError{Msg: "sign-in failed", Err: err}
	}
	s.replace(sess)
	s.registerAccount(sess)
	return sess, nil
}

func (s *Store) SignUp(ctx context.Context, email, password, displayName, photoURL string) (Session, error) {
	if displayName == "" {
		return Session{}, domain.ValidationError{Field: "display_name", Msg: "required"}
	}
	sess, err := s.provider.SignUp(ctx, email, password, displayName, photoURL)
	if err != nil {
		if domain.IsAuth(err) {
			return Session{}, err
		}
		return Session{}, domain.AuthError{Msg: "sign-up failed", Err: err}
	}
	s.replace(sess)
	s.registerAccount(sess)
	return sess, nil
}

// SignOut always clears the local slot, even when the remote revocation
// fails; the provider call is best effort.
func (s *Store) SignOut(ctx context.Context) {
	prev := s.Current()
	s.replace(Session{State: StateAnonymous})
	if prev.State != StateAuthenticated || prev.AccessToken == "" {
		return
	}
	if err := s.provider.SignOut(ctx, prev.AccessToken); err != nil {
		utils.LogEvent("", "session", "sign_out", "remote revoke failed: "+err.Error())
	}
}

// UpdateProfile pushes the new display name and photo to the provider and
// then republishes the slot with the same identity.
func (s *Store) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	cur := s.Current()
	if cur.State != StateAuthenticated {
		return domain.AuthError{Msg: "not signed in"}
	}
	if err := s.provider.UpdateProfile(ctx, cur.AccessToken, displayName, photoURL); err != nil {
		return err
	}
	cur.DisplayName = displayName
	if photoURL != "" {
		cur.PhotoURL = photoURL
	}
	s.replace(cur)
	return nil
}

// AccessToken returns a token fit for an outbound request, refreshing
// first when the current one is at or past expiry.
func (s *Store) AccessToken(ctx context.Context) string {
	cur := s.Current()
	if cur.State != StateAuthenticated {
		return ""
	}
	if cur.RefreshToken == "" || cur.ExpiresAt.IsZero() || time.Until(cur.ExpiresAt) > 30*time.Second {
		return cur.AccessToken
	}
	fresh, err := s.provider.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		// Let the gateway's 401 handling decide; a dying token is still a token.
		utils.LogEvent("", "session", "refresh", "token refresh failed: "+err.Error())
		return cur.AccessToken
	}
	s.replace(fresh)
	return fresh.AccessToken
}

func (s *Store) replace(next Session) {
	s.mu.Lock()
	s.cur = next
	listeners := make([]func(Session), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(next)
	}
}

// registerAccount performs the idempotent backend upsert. Failures are
// logged and never surfaced; the UI must not block on it.
func (s *Store) registerAccount(sess Session) {
	s.mu.RLock()
	register := s.register
	s.mu.RUnlock()
	if register == nil || sess.State != StateAuthenticated {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := register(ctx, sess); err != nil {
			utils.LogEvent("", "session", "register", "account upsert failed: "+err.Error())
		}
	}()
}
