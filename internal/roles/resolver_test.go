package roles

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/session"
)

type fakeIdentity struct {
	sessions map[string]session.Session
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	sess, ok := f.sessions[email]
	if !ok {
		return session.Session{}, domain.AuthError{Msg: "email or password is wrong"}
	}
	return sess, nil
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password, displayName, photoURL string) (session.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeIdentity) SignOut(ctx context.Context, accessToken string) error { return nil }

func (f *fakeIdentity) Refresh(ctx context.Context, refreshToken string) (session.Session, error) {
	return session.Session{}, errors.New("no refresh in fixture")
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, accessToken, displayName, photoURL string) error {
	return nil
}

func newIdentity(emails ...string) *fakeIdentity {
	f := &fakeIdentity{sessions: map[string]session.Session{}}
	for _, e := range emails {
		f.sessions[e] = session.Session{
			State:       session.StateAuthenticated,
			UID:         "uid-" + e,
			Email:       e,
			AccessToken: "at-" + e,
			ExpiresAt:   time.Now().Add(time.Hour),
		}
	}
	return f
}

// resolver wired with an injected fetch; the gateway-backed default is
// exercised by the gateway package's tests.
func newResolver(t *testing.T, store *session.Store, fetch func(ctx context.Context, email string) (domain.Role, error)) *Resolver {
	t.Helper()
	r := New(store, nil)
	r.Fetch = fetch
	return r
}

func TestResolveCachesPerEmail(t *testing.T) {
	store := session.NewStore(newIdentity("admin@hostel.test"))
	calls := 0
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		calls++
		return domain.RoleAdmin, nil
	})
	ctx := context.Background()
	if _, err := store.SignIn(ctx, "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		role, err := r.Resolve(ctx)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if role != domain.RoleAdmin {
			t.Fatalf("role = %v, want admin", role)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fetch for repeated resolves, got %d", calls)
	}
}

func TestResolveRefusesWhileSessionLoading(t *testing.T) {
	store := session.NewStore(newIdentity())
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		t.Fatalf("must not fetch while the session is unknown")
		return "", nil
	})
	_, err := r.Resolve(context.Background())
	if !domain.IsAuth(err) {
		t.Fatalf("expected auth error while loading, got %v", err)
	}
}

func TestAccountSwitchMissesOldCache(t *testing.T) {
	store := session.NewStore(newIdentity("admin@hostel.test", "student@hostel.test"))
	roleFor := map[string]domain.Role{
		"admin@hostel.test":   domain.RoleAdmin,
		"student@hostel.test": domain.RoleUser,
	}
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		return roleFor[email], nil
	})
	ctx := context.Background()

	if _, err := store.SignIn(ctx, "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if role, _ := r.Resolve(ctx); role != domain.RoleAdmin {
		t.Fatalf("admin resolved as %v", role)
	}

	// Switch accounts without signing out in between.
	if _, err := store.SignIn(ctx, "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	role, err := r.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if role != domain.RoleUser {
		t.Fatalf("switched account replayed the previous role: %v", role)
	}
}

func TestSignOutPurgesCache(t *testing.T) {
	store := session.NewStore(newIdentity("admin@hostel.test"))
	calls := 0
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		calls++
		return domain.RoleAdmin, nil
	})
	ctx := context.Background()
	if _, err := store.SignIn(ctx, "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if _, err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	store.SignOut(ctx)
	if _, err := store.SignIn(ctx, "admin@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if _, err := r.Resolve(ctx); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("sign-out must purge the role cache, fetch calls = %d", calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := session.NewStore(newIdentity("student@hostel.test"))
	role := domain.RoleUser
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		return role, nil
	})
	ctx := context.Background()
	if _, err := store.SignIn(ctx, "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if got, _ := r.Resolve(ctx); got != domain.RoleUser {
		t.Fatalf("initial role = %v", got)
	}

	// Promotion lands server-side; the client invalidates the entry.
	role = domain.RoleAdmin
	r.Invalidate("Student@Hostel.Test ")
	got, err := r.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != domain.RoleAdmin {
		t.Fatalf("invalidate did not force a refetch, role = %v", got)
	}
}

func TestLoadingCompositesSessionAndFetch(t *testing.T) {
	store := session.NewStore(newIdentity("student@hostel.test"))
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		return domain.RoleUser, nil
	})
	if !r.Loading() {
		t.Fatalf("resolver must report loading while the session restores")
	}

	ctx := context.Background()
	if _, err := store.SignIn(ctx, "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if r.Loading() {
		t.Fatalf("no fetch in flight and session settled, loading must be false")
	}
}

func TestResolveFetchErrorNotCached(t *testing.T) {
	store := session.NewStore(newIdentity("student@hostel.test"))
	fail := true
	r := newResolver(t, store, func(ctx context.Context, email string) (domain.Role, error) {
		if fail {
			return "", domain.NetworkError{Op: "GET /users/role"}
		}
		return domain.RoleUser, nil
	})
	ctx := context.Background()
	if _, err := store.SignIn(ctx, "student@hostel.test", "pw"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if _, err := r.Resolve(ctx); !domain.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}

	fail = false
	role, err := r.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve after recovery failed: %v", err)
	}
	if role != domain.RoleUser {
		t.Fatalf("role = %v, want user", role)
	}
}
