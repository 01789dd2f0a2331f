package domain

import "strings"

// Role is the coarse authorization category controlling which dashboard
// sections are reachable. Orthogonal to Badge.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Badge is the membership tier of an account. It gates which actions are
// permitted (meal requests need silver or above), not which routes.
type Badge string

const (
	BadgeBronze   Badge = "bronze"
	BadgeSilver   Badge = "silver"
	BadgeGold     Badge = "gold"
	BadgePlatinum Badge = "platinum"
)

var badgeRank = map[Badge]int{
	BadgeBronze:   0,
	BadgeSilver:   1,
	BadgeGold:     2,
	BadgePlatinum: 3,
}

func ParseBadge(raw string) (Badge, bool) {
	b := Badge(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := badgeRank[b]
	return b, ok
}

// CanRequestMeals reports whether the tier permits upcoming-meal requests.
// The backend stays authoritative; this only short-circuits the UI.
func (b Badge) CanRequestMeals() bool {
	return badgeRank[b] >= badgeRank[BadgeSilver]
}

// Price returns the membership price in whole currency units, 0 for bronze.
func (b Badge) Price() int64 {
	switch b {
	case BadgeSilver:
		return 199
	case BadgeGold:
		return 499
	case BadgePlatinum:
		return 999
	default:
		return 0
	}
}

// PageSizes is the fixed set of items-per-page densities a list screen may
// offer. Anything outside the set is rejected by the controllers.
var PageSizes = []int{5, 10, 15, 20, 30, 50}

func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}
