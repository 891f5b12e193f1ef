package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/eringen/folio"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		log.Printf("folio %s", version)
		return
	}

	cfg := folio.Config{
		Name:          folio.EnvOr("FOLIO_NAME", "Portfolio"),
		URL:           folio.EnvOr("FOLIO_URL", "http://localhost:4000"),
		Description:   folio.EnvOr("FOLIO_DESCRIPTION", "Personal portfolio and blog"),
		Addr:          folio.EnvOr("FOLIO_ADDR", ":4000"),
		DatabasePath:  folio.EnvOr("FOLIO_DB_PATH", "data/folio.db"),
		AdminEmail:    folio.EnvOr("FOLIO_ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: folio.MustEnv("FOLIO_ADMIN_PASSWORD"),
		SessionSecret: folio.MustEnv("FOLIO_SESSION_SECRET"),
		CookieSecure:  os.Getenv("FOLIO_COOKIE_SECURE") == "true",
		AllowedOrigin: folio.EnvOr("FOLIO_ALLOWED_ORIGIN", "*"),
		StaticDir:     folio.EnvOr("FOLIO_STATIC_DIR", "public"),
	}
	if v := os.Getenv("FOLIO_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid FOLIO_RATE_LIMIT %q: %v", v, err)
		}
		cfg.RateLimit = limit
	}

	app := folio.New(cfg)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		if err := app.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
		os.Exit(0)
	}()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
