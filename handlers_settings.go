package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type settingPayload struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

func (a *App) handleGetSettings(c echo.Context) error {
	settings, err := a.Store.AllSettings()
	if err != nil {
		c.Logger().Errorf("get settings: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch settings")
	}
	return c.JSON(http.StatusOK, settings)
}

func (a *App) handleSetSetting(c echo.Context) error {
	var in settingPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Key is required")
	}
	if err := a.Store.SetSetting(in.Key, sanitizeString(in.Value)); err != nil {
		c.Logger().Errorf("set setting %q: %v", in.Key, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to save setting")
	}
	c.Logger().Infof("updated setting %q", in.Key)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (a *App) handleBulkSettings(c echo.Context) error {
	var in map[string]string
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	if len(in) == 0 {
		return jsonError(c, http.StatusBadRequest, "No settings provided")
	}
	for k, v := range in {
		if k == "" {
			continue
		}
		if err := a.Store.SetSetting(k, sanitizeString(v)); err != nil {
			c.Logger().Errorf("bulk set setting %q: %v", k, err)
			return jsonError(c, http.StatusInternalServerError, "Failed to save settings")
		}
	}
	c.Logger().Infof("bulk updated %d settings", len(in))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(in)})
}
