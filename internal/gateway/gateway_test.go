package gateway

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"hostelmeals/internal/config"
	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/session"
	"hostelmeals/internal/testfixtures"
)

type testRig struct {
	gw       *Gateway
	backend  *testfixtures.Backend
	provider *testfixtures.FakeProvider
	store    *session.Store
	history  *nav.History
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	backend := testfixtures.NewBackend()
	srv := httptest.NewServer(backend.Engine)
	t.Cleanup(srv.Close)

	provider := testfixtures.NewFakeProvider(backend)
	store := session.NewStore(provider)
	store.Restore(context.Background(), "")
	history := nav.NewHistory()

	env := config.Env{
		APIBaseURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
		RetryCount:     0,
	}
	return &testRig{
		gw:       New(env, store, history),
		backend:  backend,
		provider: provider,
		store:    store,
		history:  history,
	}
}

func (r *testRig) signIn(t *testing.T, email, password string) {
	t.Helper()
	if _, err := r.store.SignIn(context.Background(), email, password); err != nil {
		t.Fatalf("sign-in as %s failed: %v", email, err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	rig := newRig(t)
	rig.signIn(t, testfixtures.UserEmail, testfixtures.UserPassword)

	var me models.Account
	if err := rig.gw.Get(context.Background(), "/users/me", nil, &me); err != nil {
		t.Fatalf("GET /users/me failed: %v", err)
	}
	if me.Email != testfixtures.UserEmail {
		t.Fatalf("me.Email = %q, want %q", me.Email, testfixtures.UserEmail)
	}
}

func TestForbiddenNavigatesToForbiddenScreen(t *testing.T) {
	rig := newRig(t)
	rig.signIn(t, testfixtures.UserEmail, testfixtures.UserPassword)
	rig.history.Go("/dashboard/profile")

	var out models.Page[models.Account]
	err := rig.gw.Get(context.Background(), "/users", nil, &out)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if rig.history.Location() != nav.PathForbidden {
		t.Fatalf("location = %q, want %q", rig.history.Location(), nav.PathForbidden)
	}
	// The session survives a 403: the user is who they say they are, they
	// just cannot see this screen.
	if got := rig.store.Current().State; got != session.StateAuthenticated {
		t.Fatalf("403 must not sign out, state = %v", got)
	}

	// A second 403 from a retried screen repeats the policy without a
	// second navigation glitch.
	err = rig.gw.Get(context.Background(), "/users", nil, &out)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error on repeat, got %v", err)
	}
	if rig.history.Location() != nav.PathForbidden {
		t.Fatalf("location moved off forbidden: %q", rig.history.Location())
	}
}

func TestUnauthorizedSignsOutThenRedirectsWithReturnPath(t *testing.T) {
	rig := newRig(t)
	rig.signIn(t, testfixtures.UserEmail, testfixtures.UserPassword)
	rig.history.Go("/dashboard/requested-meals")

	err := rig.gw.Get(context.Background(), "/debug/status/401", nil, nil)
	if !domain.IsSessionExpired(err) {
		t.Fatalf("expected session-expired error, got %v", err)
	}
	if got := rig.store.Current().State; got != session.StateAnonymous {
		t.Fatalf("401 must clear the session, state = %v", got)
	}
	if rig.provider.SignOutCalls() != 1 {
		t.Fatalf("provider revocations = %d, want 1", rig.provider.SignOutCalls())
	}
	if rig.history.Location() != nav.PathLogin {
		t.Fatalf("location = %q, want %q", rig.history.Location(), nav.PathLogin)
	}
	if got := rig.history.ConsumeReturn(); got != "/dashboard/requested-meals" {
		t.Fatalf("return path = %q, want the interrupted path", got)
	}
}

func TestUnauthorizedWhileAnonymous(t *testing.T) {
	rig := newRig(t)
	rig.history.Go("/dashboard")

	var out models.Page[models.Meal]
	err := rig.gw.Get(context.Background(), "/meals", nil, &out)
	if !domain.IsSessionExpired(err) {
		t.Fatalf("expected session-expired error, got %v", err)
	}
	// No live session to revoke; no provider call.
	if rig.provider.SignOutCalls() != 0 {
		t.Fatalf("anonymous 401 must not call the provider, revocations = %d", rig.provider.SignOutCalls())
	}
	if rig.history.Location() != nav.PathLogin {
		t.Fatalf("location = %q, want %q", rig.history.Location(), nav.PathLogin)
	}
}

func TestTransportFailureBecomesNetworkError(t *testing.T) {
	backend := testfixtures.NewBackend()
	srv := httptest.NewServer(backend.Engine)
	store := session.NewStore(testfixtures.NewFakeProvider(backend))
	store.Restore(context.Background(), "")
	history := nav.NewHistory()
	gw := New(config.Env{APIBaseURL: srv.URL, RequestTimeout: time.Second, RetryCount: 0}, store, history)

	srv.Close() // connection refused from here on

	var out models.Meal
	err := gw.Get(context.Background(), "/meals/meal-1", nil, &out)
	if !domain.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if history.Location() != nav.PathHome {
		t.Fatalf("transport failure must not navigate, location = %q", history.Location())
	}
}

func TestBadRequestMapsToValidationError(t *testing.T) {
	rig := newRig(t)
	rig.signIn(t, testfixtures.UserEmail, testfixtures.UserPassword)

	// meal_id missing.
	err := rig.gw.Post(context.Background(), "/requests", map[string]string{}, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// The server's message reaches the form inline.
	if got := err.Error(); got != "meal_id is required" {
		t.Fatalf("validation message = %q, want the server's", got)
	}
}

func TestMissingResourceMapsToNotFound(t *testing.T) {
	rig := newRig(t)
	var out models.Meal
	err := rig.gw.Get(context.Background(), "/meals/no-such-meal", nil, &out)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServerErrorIsPlainError(t *testing.T) {
	rig := newRig(t)
	err := rig.gw.Get(context.Background(), "/debug/status/500", nil, nil)
	if err == nil {
		t.Fatalf("expected error for 500")
	}
	if domain.IsNetwork(err) || domain.IsValidation(err) || domain.IsForbidden(err) || domain.IsSessionExpired(err) {
		t.Fatalf("500 must not map onto a sentinel category: %v", err)
	}
}

func TestCancelledContextPassesThrough(t *testing.T) {
	rig := newRig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rig.gw.Get(ctx, "/meals/browse", nil, nil)
	if err == nil {
		t.Fatalf("expected error from cancelled context")
	}
	if domain.IsNetwork(err) {
		t.Fatalf("cancellation must not be reported as a network failure: %v", err)
	}
}
