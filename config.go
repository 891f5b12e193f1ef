package folio

import (
	"log"
	"os"
)

// Config holds all configuration for a folio server.
type Config struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:4000")
	Description string // Site description for RSS and meta tags

	Addr         string // Listen address (default ":4000")
	DatabasePath string // SQLite path (default "data/folio.db")

	AdminEmail    string // Demo credential: admin email (default "admin@example.com")
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	AllowedOrigin string  // CORS origin for the SPA (default "*")
	RateLimit     float64 // API requests per second per IP (default 20)
	RateBurst     int     // Burst allowance for the rate limiter (default 50)

	StaticDir string // Directory for uploaded assets (default "public")
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:4000"
	}
	if c.Addr == "" {
		c.Addr = ":4000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.AdminEmail == "" {
		c.AdminEmail = "admin@example.com"
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = "*"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 20
	}
	if c.RateBurst == 0 {
		c.RateBurst = 50
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
