package folio

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// loginPayload is the demo credential pair checked against the configured
// admin email and password.
type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return jsonError(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	var in loginPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Email and password are required")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(a.Config.AdminEmail))
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(a.Config.AdminPassword))
	if emailOK&passOK != 1 {
		c.Logger().Infof("failed login attempt for %q from %s", in.Email, c.RealIP())
		return jsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if err := setAdminSession(c, in.Email); err != nil {
		c.Logger().Errorf("set session: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create session")
	}
	c.Logger().Infof("admin login from %s", c.RealIP())
	return c.JSON(http.StatusOK, echo.Map{"success": true, "email": in.Email})
}

func handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to clear session")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func handleAuthMe(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"authenticated": true, "email": sessionEmail(c)})
}
