package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type experiencePayload struct {
	Title        *string   `json:"title"`
	Organization *string   `json:"organization"`
	Period       *string   `json:"period"`
	Description  *string   `json:"description"`
	Type         *string   `json:"type"`
	Image        *string   `json:"image"`
	Images       *[]string `json:"images"`
	StartDate    *string   `json:"startDate"`
	// Older clients send the persisted column name.
	StartDateSnake *string   `json:"start_date"`
	Tags           *[]string `json:"tags"`
	SortOrder      *int      `json:"sortOrder"`
}

func (p *experiencePayload) startDate() *string {
	if p.StartDate != nil {
		return p.StartDate
	}
	return p.StartDateSnake
}

func (a *App) handleListExperiences(c echo.Context) error {
	experiences, err := a.Store.ListExperiences()
	if err != nil {
		c.Logger().Errorf("list experiences: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch experiences")
	}
	return c.JSON(http.StatusOK, experiences)
}

func (a *App) handleCreateExperience(c echo.Context) error {
	var in experiencePayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return jsonError(c, http.StatusBadRequest, "Title is required")
	}
	if in.Type != nil && *in.Type != "" && !validExperienceType(*in.Type) {
		return jsonError(c, http.StatusBadRequest, "Invalid type")
	}

	e := Experience{Title: sanitizeString(title), Type: "work"}
	if in.Organization != nil {
		e.Organization = sanitizeString(*in.Organization)
	}
	if in.Period != nil {
		e.Period = sanitizeString(*in.Period)
	}
	if in.Description != nil {
		e.Description = sanitizeString(*in.Description)
	}
	if in.Type != nil && *in.Type != "" {
		e.Type = *in.Type
	}
	if sd := in.startDate(); sd != nil {
		e.StartDate = sanitizeString(*sd)
	}
	if in.Tags != nil {
		e.Tags = sanitizeList(*in.Tags)
	}
	if in.SortOrder != nil {
		e.SortOrder = *in.SortOrder
	}
	applyExperienceImages(&e, in.Image, in.Images)

	created, err := a.Store.CreateExperience(e)
	if err != nil {
		c.Logger().Errorf("create experience: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create experience")
	}
	c.Logger().Infof("created experience %d (%s)", created.ID, created.Title)
	return c.JSON(http.StatusOK, created)
}

func (a *App) handleUpdateExperience(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	var in experiencePayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	e, err := a.Store.GetExperience(id)
	if err == ErrNotFound {
		return jsonError(c, http.StatusNotFound, "Experience not found")
	}
	if err != nil {
		c.Logger().Errorf("update experience %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update experience")
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		e.Title = sanitizeString(strings.TrimSpace(*in.Title))
	}
	if in.Organization != nil {
		e.Organization = sanitizeString(*in.Organization)
	}
	if in.Period != nil {
		e.Period = sanitizeString(*in.Period)
	}
	if in.Description != nil {
		e.Description = sanitizeString(*in.Description)
	}
	if in.Type != nil && *in.Type != "" {
		if !validExperienceType(*in.Type) {
			return jsonError(c, http.StatusBadRequest, "Invalid type")
		}
		e.Type = *in.Type
	}
	if sd := in.startDate(); sd != nil {
		e.StartDate = sanitizeString(*sd)
	}
	if in.Tags != nil {
		e.Tags = sanitizeList(*in.Tags)
	}
	if in.SortOrder != nil {
		e.SortOrder = *in.SortOrder
	}
	if in.Image != nil || in.Images != nil {
		applyExperienceImages(&e, in.Image, in.Images)
	}

	if err := a.Store.UpdateExperience(e); err != nil {
		c.Logger().Errorf("update experience %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update experience")
	}
	c.Logger().Infof("updated experience %d", e.ID)
	return c.JSON(http.StatusOK, e)
}

func (a *App) handleDeleteExperience(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	if err := a.Store.DeleteExperience(id); err != nil {
		c.Logger().Errorf("delete experience %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete experience")
	}
	c.Logger().Infof("deleted experience %d", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// applyExperienceImages resolves the gallery and the legacy single image:
// an explicit gallery wins and its first entry becomes the cover; a lone
// single image becomes a one-element gallery.
func applyExperienceImages(e *Experience, image *string, images *[]string) {
	switch {
	case images != nil:
		gallery := filterEmpty(*images)
		if len(gallery) > maxGalleryLen {
			gallery = gallery[:maxGalleryLen]
		}
		e.Images = gallery
	case image != nil && *image != "":
		e.Images = []string{*image}
	}
	if image != nil && *image != "" {
		e.Image = *image
	} else if len(e.Images) > 0 {
		e.Image = e.Images[0]
	}
}
