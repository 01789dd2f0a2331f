package roles

import (
	"context"
	"net/url"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/gateway"
	"hostelmeals/internal/session"
	"hostelmeals/internal/utils"
)

const cacheSize = 16

// Resolver answers "what is this user allowed to do". Results are cached
// per email, so switching accounts can never replay the previous
// account's role: the new email simply misses the cache.
type Resolver struct {
	sess  *session.Store
	cache *lru.Cache[string, domain.Role]

	mu       sync.Mutex
	inflight int

	// Fetch is injectable for tests; the default goes through the gateway.
	Fetch func(ctx context.Context, email string) (domain.Role, error)
}

func New(sess *session.Store, gw *gateway.Gateway) *Resolver {
	cache, err := lru.New[string, domain.Role](cacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	r := &Resolver{sess: sess, cache: cache}
	r.Fetch = func(ctx context.Context, email string) (domain.Role, error) {
		params := url.Values{}
		params.Set("email", email)
		var out struct {
			Role string `json:"role"`
		}
		if err := gw.Get(ctx, "/users/role", params, &out); err != nil {
			return "", err
		}
		role, ok := domain.ParseRole(out.Role)
		if !ok {
			role = domain.RoleUser
		}
		return role, nil
	}
	// A signed-out or switched identity should not keep old entries warm.
	sess.Subscribe(func(s session.Session) {
		if s.State == session.StateAnonymous {
			cache.Purge()
		}
	})
	return r
}

// Loading is the composite gate role-dependent UI must check: true while
// the session itself is restoring or a role fetch is in flight. Checking
// only the raw fetch flag shows a flash of the wrong dashboard.
func (r *Resolver) Loading() bool {
	if r.sess.Loading() {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Resolve returns the role for the current session's email, fetching
// lazily. It refuses to guess while the session is loading or the email
// is absent.
func (r *Resolver) Resolve(ctx context.Context) (domain.Role, error) {
	cur := r.sess.Current()
	if cur.State == session.StateUnknown {
		return "", domain.AuthError{Msg: "session still loading"}
	}
	email := utils.NormalizeEmail(cur.Email)
	if email == "" {
		return "", domain.AuthError{Msg: "no signed-in email"}
	}
	if role, ok := r.cache.Get(email); ok {
		return role, nil
	}

	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()
	role, err := r.Fetch(ctx, email)
	r.mu.Lock()
	r.inflight--
	r.mu.Unlock()

	if err != nil {
		return "", err
	}
	// Cache only for the email that asked; a concurrent account switch
	// keys differently and stays unaffected.
	r.cache.Add(email, role)
	return role, nil
}

// Invalidate drops the cached role for one email, e.g. after an admin
// promotion takes effect.
func (r *Resolver) Invalidate(email string) {
	r.cache.Remove(utils.NormalizeEmail(email))
}
