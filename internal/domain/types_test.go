package domain

import "testing"

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" Admin "); !ok || r != RoleAdmin {
		t.Fatalf("ParseRole(Admin) = %v %v", r, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Fatalf("unknown role must not parse")
	}
}

func TestBadgeGate(t *testing.T) {
	if BadgeBronze.CanRequestMeals() {
		t.Fatalf("bronze must not pass the request gate")
	}
	for _, b := range []Badge{BadgeSilver, BadgeGold, BadgePlatinum} {
		if !b.CanRequestMeals() {
			t.Fatalf("%s must pass the request gate", b)
		}
	}
}

func TestBadgePrices(t *testing.T) {
	if BadgeBronze.Price() != 0 {
		t.Fatalf("bronze is the free tier")
	}
	if BadgeSilver.Price() != 199 || BadgeGold.Price() != 499 || BadgePlatinum.Price() != 999 {
		t.Fatalf("unexpected tier prices: %d %d %d",
			BadgeSilver.Price(), BadgeGold.Price(), BadgePlatinum.Price())
	}
}

func TestParseBadge(t *testing.T) {
	if b, ok := ParseBadge("GOLD"); !ok || b != BadgeGold {
		t.Fatalf("ParseBadge(GOLD) = %v %v", b, ok)
	}
	if _, ok := ParseBadge("diamond"); ok {
		t.Fatalf("unknown badge must not parse")
	}
}

func TestValidPageSize(t *testing.T) {
	for _, n := range PageSizes {
		if !ValidPageSize(n) {
			t.Fatalf("%d should be a valid page size", n)
		}
	}
	for _, n := range []int{0, 7, 25, 100} {
		if ValidPageSize(n) {
			t.Fatalf("%d should not be a valid page size", n)
		}
	}
}
