package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/roles"
	"hostelmeals/internal/session"
)

type fixtureProvider struct {
	roleFor map[string]domain.Role
}

func (f *fixtureProvider) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	if _, ok := f.roleFor[email]; !ok {
		return session.Session{}, domain.AuthError{Msg: "email or password is wrong"}
	}
	return session.Session{
		State:       session.StateAuthenticated,
		UID:         "uid-" + email,
		Email:       email,
		AccessToken: "at-" + email,
		ExpiresAt:   time.Now().Add(time.Hour),
	}, nil
}

func (f *fixtureProvider) SignUp(ctx context.Context, email, password, displayName, photoURL string) (session.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fixtureProvider) SignOut(ctx context.Context, accessToken string) error { return nil }

func (f *fixtureProvider) Refresh(ctx context.Context, refreshToken string) (session.Session, error) {
	return session.Session{}, errors.New("no refresh in fixture")
}

func (f *fixtureProvider) UpdateProfile(ctx context.Context, accessToken, displayName, photoURL string) error {
	return nil
}

type harness struct {
	store   *session.Store
	history *nav.History
	guard   *Guard
}

func newHarness(t *testing.T, roleFor map[string]domain.Role) *harness {
	t.Helper()
	store := session.NewStore(&fixtureProvider{roleFor: roleFor})
	resolver := roles.New(store, nil)
	resolver.Fetch = func(ctx context.Context, email string) (domain.Role, error) {
		role, ok := roleFor[email]
		if !ok {
			return domain.RoleUser, nil
		}
		return role, nil
	}
	history := nav.NewHistory()
	return &harness{
		store:   store,
		history: history,
		guard:   New(store, resolver, history),
	}
}

func TestPublicAlwaysAllowed(t *testing.T) {
	h := newHarness(t, nil)
	// Session still unknown, yet public routes render immediately.
	d := h.guard.Evaluate(context.Background(), RequirePublic)
	if d.Verdict != VerdictAllow {
		t.Fatalf("public route verdict = %v, want allow", d.Verdict)
	}
}

// A protected route must never allow or redirect while the session is
// still restoring; late role data must not cause a flash of the wrong
// outcome.
func TestProtectedPendingWhileSessionLoading(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{"student@hostel.test": domain.RoleUser})
	for _, req := range []Require{RequireAuthenticated, RequireUser, RequireAdmin} {
		d := h.guard.Evaluate(context.Background(), req)
		if d.Verdict != VerdictPending {
			t.Fatalf("requirement %v verdict = %v while loading, want pending", req, d.Verdict)
		}
	}
	if h.history.Location() != nav.PathHome {
		t.Fatalf("pending must not navigate, location = %q", h.history.Location())
	}
}

func TestAnonymousRedirectsToLoginWithReturnPath(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Restore(context.Background(), "")
	h.history.Go("/dashboard/requested-meals")

	d := h.guard.Apply(context.Background(), RequireUser)
	if d.Verdict != VerdictRedirectLogin {
		t.Fatalf("verdict = %v, want redirect-login", d.Verdict)
	}
	if h.history.Location() != nav.PathLogin {
		t.Fatalf("location = %q, want %q", h.history.Location(), nav.PathLogin)
	}
	if got := h.history.ConsumeReturn(); got != "/dashboard/requested-meals" {
		t.Fatalf("return path = %q, want the interrupted destination", got)
	}
}

func TestAuthenticatedOnlyRouteAllowsAnyRole(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{"student@hostel.test": domain.RoleUser})
	if _, err := h.store.SignIn(context.Background(), "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	d := h.guard.Evaluate(context.Background(), RequireAuthenticated)
	if d.Verdict != VerdictAllow {
		t.Fatalf("verdict = %v, want allow", d.Verdict)
	}
}

func TestRoleMismatchRedirectsForbidden(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{"student@hostel.test": domain.RoleUser})
	if _, err := h.store.SignIn(context.Background(), "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	d := h.guard.Apply(context.Background(), RequireAdmin)
	if d.Verdict != VerdictRedirectForbidden {
		t.Fatalf("verdict = %v, want redirect-forbidden", d.Verdict)
	}
	if h.history.Location() != nav.PathForbidden {
		t.Fatalf("location = %q, want %q", h.history.Location(), nav.PathForbidden)
	}
}

func TestAdminAllowedOnAdminRoute(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{"admin@hostel.test": domain.RoleAdmin})
	if _, err := h.store.SignIn(context.Background(), "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if d := h.guard.Evaluate(context.Background(), RequireAdmin); d.Verdict != VerdictAllow {
		t.Fatalf("admin on admin route verdict = %v, want allow", d.Verdict)
	}
	// Admins do not get the user dashboard and vice versa.
	if d := h.guard.Evaluate(context.Background(), RequireUser); d.Verdict != VerdictRedirectForbidden {
		t.Fatalf("admin on user route verdict = %v, want redirect-forbidden", d.Verdict)
	}
}

func TestRoleFetchNetworkErrorStaysPending(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{"student@hostel.test": domain.RoleUser})
	if _, err := h.store.SignIn(context.Background(), "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	h.guard.roles.Fetch = func(ctx context.Context, email string) (domain.Role, error) {
		return "", domain.NetworkError{Op: "GET /users/role"}
	}
	d := h.guard.Apply(context.Background(), RequireUser)
	if d.Verdict != VerdictPending {
		t.Fatalf("transport blip verdict = %v, want pending", d.Verdict)
	}
	if h.history.Location() != nav.PathHome {
		t.Fatalf("transport blip must not navigate, location = %q", h.history.Location())
	}
}

// Switching accounts must re-evaluate with the new identity's role; the
// previous account's verdict cannot leak through.
func TestAccountSwitchReevaluates(t *testing.T) {
	h := newHarness(t, map[string]domain.Role{
		"admin@hostel.test":   domain.RoleAdmin,
		"student@hostel.test": domain.RoleUser,
	})
	ctx := context.Background()
	if _, err := h.store.SignIn(ctx, "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if d := h.guard.Evaluate(ctx, RequireAdmin); d.Verdict != VerdictAllow {
		t.Fatalf("admin verdict = %v, want allow", d.Verdict)
	}

	if _, err := h.store.SignIn(ctx, "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if d := h.guard.Evaluate(ctx, RequireAdmin); d.Verdict != VerdictRedirectForbidden {
		t.Fatalf("switched account kept admin access: verdict = %v", d.Verdict)
	}
	if d := h.guard.Evaluate(ctx, RequireUser); d.Verdict != VerdictAllow {
		t.Fatalf("student verdict on user route = %v, want allow", d.Verdict)
	}
}

func TestTableFirstPrefixWins(t *testing.T) {
	table := DefaultTable()
	cases := []struct {
		path string
		want Require
	}{
		{"/dashboard/admin/manage-users", RequireAdmin},
		{"/dashboard/requested-meals", RequireUser},
		{"/checkout/gold", RequireAuthenticated},
		{"/meals", RequirePublic},
		{"/", RequirePublic},
	}
	for _, tc := range cases {
		if got := table.RequirementFor(tc.path); got != tc.want {
			t.Fatalf("RequirementFor(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestUnmatchedPathDefaultsAuthenticated(t *testing.T) {
	table := Table{{Prefix: "/dashboard", Require: RequireUser}}
	if got := table.RequirementFor("/elsewhere"); got != RequireAuthenticated {
		t.Fatalf("unmatched path requirement = %v, want authenticated", got)
	}
}

func TestCheckDrivesTableAndSideEffects(t *testing.T) {
	h := newHarness(t, nil)
	h.store.Restore(context.Background(), "")
	h.history.Go("/dashboard/profile")

	d := h.guard.Check(context.Background(), DefaultTable(), "/dashboard/profile")
	if d.Verdict != VerdictRedirectLogin {
		t.Fatalf("verdict = %v, want redirect-login", d.Verdict)
	}
	if h.history.Location() != nav.PathLogin {
		t.Fatalf("location = %q, want %q", h.history.Location(), nav.PathLogin)
	}
}
