package folio

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleLanding(c echo.Context) error {
	settings, err := a.Store.AllSettings()
	if err != nil {
		c.Logger().Errorf("load settings: %v", err)
		settings = DefaultSettings()
	}
	return Render(c, http.StatusOK, landingView(settings))
}

// jsonError writes the fixed-shape error payload used across the API.
func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

// requestID resolves a numeric id from the path parameter or, for the
// legacy query-parameter convention, from ?id=. Returns false for
// non-numeric or non-positive values.
func requestID(c echo.Context) (int64, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.QueryParam("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// httpErrorHandler renders JSON errors for API paths and minimal HTML pages
// for everything else.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if code == http.StatusNotFound {
			msg = "Not found"
		}
		_ = jsonError(c, code, msg)
		return
	}
	if code == http.StatusNotFound {
		_ = Render(c, code, notFoundView())
		return
	}
	_ = Render(c, code, serverErrorView())
}
