package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"hostelmeals/internal/domain"
)

type Env struct {
	APIBaseURL      string
	AuthProjectRef  string
	AuthAnonKey     string
	RequestTimeout  time.Duration
	RetryCount      int
	DefaultPageSize int
	RefreshToken    string
	Debug           bool
}

func LoadEnv() Env {
	baseURL := strings.TrimSpace(os.Getenv("MEALS_API_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:5000/api"
	}

	anonKey := strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY"))
	if anonKey == "" {
		anonKey = strings.TrimSpace(os.Getenv("SUPABASE_KEY"))
	}

	// Project ref can be given directly or derived from the project URL.
	projectRef := strings.TrimSpace(os.Getenv("SUPABASE_PROJECT_REF"))
	if projectRef == "" {
		supabaseURL := strings.TrimSpace(os.Getenv("SUPABASE_URL"))
		projectRef = supabaseURL
		if idx := strings.Index(supabaseURL, ".supabase.co"); idx != -1 {
			projectRef = strings.TrimPrefix(supabaseURL[:idx], "https://")
		}
	}

	timeout := 15 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MEALS_REQUEST_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	retries := 2
	if raw := strings.TrimSpace(os.Getenv("MEALS_RETRY_COUNT")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			retries = n
		}
	}

	// Page size must be one of the densities the list screens offer.
	pageSize := 10
	if raw := strings.TrimSpace(os.Getenv("MEALS_PAGE_SIZE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && domain.ValidPageSize(n) {
			pageSize = n
		}
	}

	return Env{
		APIBaseURL:      baseURL,
		AuthProjectRef:  projectRef,
		AuthAnonKey:     anonKey,
		RequestTimeout:  timeout,
		RetryCount:      retries,
		DefaultPageSize: pageSize,
		RefreshToken:    strings.TrimSpace(os.Getenv("MEALS_REFRESH_TOKEN")),
		Debug:           strings.EqualFold(strings.TrimSpace(os.Getenv("MEALS_DEBUG")), "true"),
	}
}
