package guard

import (
	"context"
	"strings"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/roles"
	"hostelmeals/internal/session"
)

// Require annotates a route with what it takes to render it.
type Require int

const (
	// RequirePublic renders for anyone, including anonymous visitors.
	RequirePublic Require = iota
	// RequireAuthenticated renders for any signed-in user.
	RequireAuthenticated
	// RequireUser renders only for role == user.
	RequireUser
	// RequireAdmin renders only for role == admin.
	RequireAdmin
)

// Verdict is the guard's state machine output. While Pending the caller
// renders a neutral loading indicator: never the protected content and
// never a redirect, so role data arriving late cannot cause flicker.
type Verdict int

const (
	VerdictPending Verdict = iota
	VerdictAllow
	VerdictRedirectLogin
	VerdictRedirectForbidden
)

// Decision carries the verdict plus the path the user was headed to, so
// the login screen can send them back after a successful sign-in.
type Decision struct {
	Verdict Verdict
	From    string
}

// Guard is the one evaluator for every protected route. One generic
// implementation replaces per-variant wrappers; the variants differ only
// in their Require annotation.
type Guard struct {
	sess  *session.Store
	roles *roles.Resolver
	nav   *nav.History
}

func New(sess *session.Store, resolver *roles.Resolver, history *nav.History) *Guard {
	return &Guard{sess: sess, roles: resolver, nav: history}
}

// Evaluate runs the state machine without side effects.
func (g *Guard) Evaluate(ctx context.Context, req Require) Decision {
	if req == RequirePublic {
		return Decision{Verdict: VerdictAllow}
	}
	from := g.nav.Location()
	if g.sess.Loading() {
		return Decision{Verdict: VerdictPending, From: from}
	}
	cur := g.sess.Current()
	if cur.State != session.StateAuthenticated {
		return Decision{Verdict: VerdictRedirectLogin, From: from}
	}
	if req == RequireAuthenticated {
		return Decision{Verdict: VerdictAllow, From: from}
	}
	if g.roles.Loading() {
		return Decision{Verdict: VerdictPending, From: from}
	}
	role, err := g.roles.Resolve(ctx)
	if err != nil {
		if domain.IsNetwork(err) {
			// Indistinguishable from "still loading"; do not kick the
			// user anywhere on a transport blip.
			return Decision{Verdict: VerdictPending, From: from}
		}
		return Decision{Verdict: VerdictRedirectForbidden, From: from}
	}
	if (req == RequireUser && role == domain.RoleUser) || (req == RequireAdmin && role == domain.RoleAdmin) {
		return Decision{Verdict: VerdictAllow, From: from}
	}
	return Decision{Verdict: VerdictRedirectForbidden, From: from}
}

// Apply evaluates and performs the redirect side effect when required.
func (g *Guard) Apply(ctx context.Context, req Require) Decision {
	d := g.Evaluate(ctx, req)
	switch d.Verdict {
	case VerdictRedirectLogin:
		g.nav.GoLogin(d.From)
	case VerdictRedirectForbidden:
		g.nav.GoForbidden()
	}
	return d
}

// Route binds a path prefix to its requirement.
type Route struct {
	Prefix  string
	Require Require
}

// Table is an ordered route configuration; first matching prefix wins,
// so nest the stricter prefixes before their parents.
type Table []Route

// DefaultTable mirrors the dashboard layout: admin screens under
// /dashboard/admin, user screens under /dashboard, everything else public.
func DefaultTable() Table {
	return Table{
		{Prefix: "/dashboard/admin", Require: RequireAdmin},
		{Prefix: "/dashboard", Require: RequireUser},
		{Prefix: "/checkout", Require: RequireAuthenticated},
		{Prefix: "/", Require: RequirePublic},
	}
}

// RequirementFor resolves the annotation for a path; unmatched paths are
// treated as authenticated-only rather than silently public.
func (t Table) RequirementFor(path string) Require {
	for _, r := range t {
		if strings.HasPrefix(path, r.Prefix) {
			return r.Require
		}
	}
	return RequireAuthenticated
}

// Check is the route-table entry point: annotation lookup plus Apply.
func (g *Guard) Check(ctx context.Context, t Table, path string) Decision {
	return g.Apply(ctx, t.RequirementFor(path))
}
