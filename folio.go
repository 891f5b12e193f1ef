// Package folio is a personal portfolio/blog platform backend built with Go,
// Echo, and SQLite. It serves a JSON REST API for posts, experiences,
// projects, certifications and site settings, an admin session login, image
// uploads, and RSS/sitemap feeds for the public site.
//
// The AI content generator lives in the ai subpackage; the client subpackage
// provides a cached Go SDK over this API.
package folio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central folio application. It wires together the store,
// handlers, middleware and session auth.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store

	loginLimiter *LoginLimiter
}

// New creates a new folio App with the given configuration.
func New(cfg Config) *App {
	cfg.setDefaults()
	e := echo.New()
	e.HideBanner = true
	return &App{Config: cfg, Echo: e}
}

// Start initializes the database, middleware and routes, and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup wires the store, middleware and routes without starting the listener.
func (a *App) setup() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Public site surface
	e.GET("/", a.handleLanding)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.Static("/public", a.Config.StaticDir)

	api := e.Group("/api")
	api.GET("/health", handleHealth)

	// Posts. The bare PUT/DELETE forms take ?id=, the query-parameter
	// convention older clients still use.
	api.GET("/posts", a.handleListPosts)
	api.GET("/posts/published", a.handleListPublishedPosts)
	api.GET("/posts/:slug", a.handleGetPost)
	api.POST("/posts", a.handleCreatePost)
	api.PUT("/posts/:id", a.handleUpdatePost)
	api.PUT("/posts", a.handleUpdatePost)
	api.DELETE("/posts/:id", a.handleDeletePost)
	api.DELETE("/posts", a.handleDeletePost)

	api.GET("/experiences", a.handleListExperiences)
	api.POST("/experiences", a.handleCreateExperience)
	api.PUT("/experiences/:id", a.handleUpdateExperience)
	api.DELETE("/experiences/:id", a.handleDeleteExperience)

	api.GET("/projects", a.handleListProjects)
	api.POST("/projects", a.handleCreateProject)
	api.PUT("/projects/:id", a.handleUpdateProject)
	api.DELETE("/projects/:id", a.handleDeleteProject)

	api.GET("/certifications", a.handleListCertifications)
	api.POST("/certifications", a.handleCreateCertification)
	api.PUT("/certifications/:id", a.handleUpdateCertification)
	api.DELETE("/certifications/:id", a.handleDeleteCertification)

	api.GET("/settings", a.handleGetSettings)
	api.POST("/settings", a.handleSetSetting)
	api.POST("/settings/bulk", a.handleBulkSettings)

	api.POST("/auth/login", a.handleLogin)
	api.POST("/auth/logout", handleLogout)
	api.GET("/auth/me", handleAuthMe)

	api.GET("/images", a.handleImageList)
	api.POST("/images", a.handleImageUpload)
	api.DELETE("/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
