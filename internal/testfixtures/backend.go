// Package testfixtures provides an in-memory backend implementing the
// REST contract the client consumes, plus a fake identity provider, so
// gateway/api tests run against real HTTP instead of hand-rolled stubs.
package testfixtures

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/utils"
)

// Seed credentials available to every test.
const (
	AdminEmail    = "admin@hostel.test"
	AdminPassword = "admin-pass-123"
	UserEmail     = "student@hostel.test"
	UserPassword  = "student-pass-123"
)

// Backend is the fake meal service. All state is in memory and guarded by
// one mutex; handlers are deliberately simple so a test failure points at
// the client, not the fixture.
type Backend struct {
	Engine *gin.Engine
	secret []byte

	mu        sync.Mutex
	accounts  []models.Account
	passwords map[string]string // email -> bcrypt hash
	meals     []models.Meal
	upcoming  []models.UpcomingMeal
	requests  []models.MealRequest
	reviews   []models.Review
	payments  []models.Payment
	intents   map[string]models.PaymentIntent
}

func NewBackend() *Backend {
	gin.SetMode(gin.TestMode)
	b := &Backend{
		secret:    []byte("fixture-secret"),
		passwords: map[string]string{},
		intents:   map[string]models.PaymentIntent{},
	}
	b.seed()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	b.mount(r)
	b.Engine = r
	return b
}

func (b *Backend) seed() {
	b.addAccount("Hostel Admin", AdminEmail, AdminPassword, domain.RoleAdmin, domain.BadgeGold)
	b.addAccount("Test Student", UserEmail, UserPassword, domain.RoleUser, domain.BadgeSilver)
	categories := []string{"breakfast", "lunch", "dinner"}
	for i := 1; i <= 23; i++ {
		b.meals = append(b.meals, models.Meal{
			ID:          "meal-" + strconv.Itoa(i),
			Title:       "Meal " + strconv.Itoa(i),
			Category:    categories[i%3],
			Price:       float64(40 + i),
			Rating:      4,
			PostTime:    time.Now().Add(-time.Duration(i) * time.Hour).Format("2006-01-02 15:04"),
			Distributor: "Hostel Admin",
		})
	}
	for i := 1; i <= 4; i++ {
		b.upcoming = append(b.upcoming, models.UpcomingMeal{
			ID:       "up-" + strconv.Itoa(i),
			Title:    "Upcoming " + strconv.Itoa(i),
			Category: categories[i%3],
			Price:    float64(60 + i),
		})
	}
}

func (b *Backend) addAccount(name, email, password string, role domain.Role, badge domain.Badge) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	b.passwords[email] = string(hash)
	b.accounts = append(b.accounts, models.Account{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		Badge:     badge,
		CreatedAt: time.Now().Format("2006-01-02 15:04"),
	})
}

// CheckPassword verifies seeded credentials; the fake provider uses it.
func (b *Backend) CheckPassword(email, password string) bool {
	b.mu.Lock()
	hash, ok := b.passwords[utils.NormalizeEmail(email)]
	b.mu.Unlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Token signs a short-lived HS256 access token for email, shaped like the
// identity provider's.
func (b *Backend) Token(email string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": utils.NormalizeEmail(email),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// ExpiredToken signs a token whose exp is already in the past.
func (b *Backend) ExpiredToken(email string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": utils.NormalizeEmail(email),
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := tok.SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (b *Backend) emailFromToken(raw string) (string, bool) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return b.secret, nil
	})
	if err != nil {
		return "", false
	}
	email, _ := claims["email"].(string)
	return email, email != ""
}

func (b *Backend) accountByEmail(email string) (models.Account, bool) {
	for _, a := range b.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return models.Account{}, false
}

// requireAuth validates the bearer token and stashes the caller's email.
func (b *Backend) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	email, ok := b.emailFromToken(parts[1])
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.Set("email", email)
	c.Next()
}

// requireAdmin allows only accounts whose role is admin.
func (b *Backend) requireAdmin(c *gin.Context) {
	email := c.GetString("email")
	b.mu.Lock()
	acct, ok := b.accountByEmail(email)
	b.mu.Unlock()
	if !ok || acct.Role != domain.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	c.Next()
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) models.Page[T] {
	total := len(items)
	start := (page - 1) * limit
	if start >= total {
		return models.Page[T]{Items: []T{}, TotalCount: total}
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return models.Page[T]{Items: out, TotalCount: total}
}

func slicePage[T any](items []T, page, limit int) models.Slice[T] {
	total := len(items)
	start := (page - 1) * limit
	if start >= total {
		return models.Slice[T]{Items: []T{}, HasMore: false}
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return models.Slice[T]{Items: out, HasMore: end < total}
}

func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
