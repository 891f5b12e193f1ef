package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type projectPayload struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Tags        *[]string `json:"tags"`
	Link        *string   `json:"link"`
	Category    *string   `json:"category"`
}

func (a *App) handleListProjects(c echo.Context) error {
	projects, err := a.Store.ListProjects()
	if err != nil {
		c.Logger().Errorf("list projects: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch projects")
	}
	return c.JSON(http.StatusOK, projects)
}

func (a *App) handleCreateProject(c echo.Context) error {
	var in projectPayload
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

	p := Project{Title: sanitizeString(title), Category: DefaultProjectCategory}
	if in.Description != nil {
		p.Description = sanitizeString(*in.Description)
	}
	if in.Image != nil {
		p.Image = sanitizeString(*in.Image)
	}
	if in.Tags != nil {
		p.Tags = sanitizeList(*in.Tags)
	}
	if in.Link != nil {
		p.Link = sanitizeString(*in.Link)
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = sanitizeString(*in.Category)
	}

	created, err := a.Store.CreateProject(p)
	if err != nil {
		c.Logger().Errorf("create project: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create project")
	}
	c.Logger().Infof("created project %d (%s)", created.ID, created.Title)
	return c.JSON(http.StatusOK, created)
}

func (a *App) handleUpdateProject(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	var in projectPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	p, err := a.Store.GetProject(id)
	if err == ErrNotFound {
		return jsonError(c, http.StatusNotFound, "Project not found")
	}
	if err != nil {
		c.Logger().Errorf("update project %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update project")
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		p.Title = sanitizeString(strings.TrimSpace(*in.Title))
	}
	if in.Description != nil {
		p.Description = sanitizeString(*in.Description)
	}
	if in.Image != nil {
		p.Image = sanitizeString(*in.Image)
	}
	if in.Tags != nil {
		p.Tags = sanitizeList(*in.Tags)
	}
	if in.Link != nil {
		p.Link = sanitizeString(*in.Link)
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = sanitizeString(*in.Category)
	}

	if err := a.Store.UpdateProject(p); err != nil {
		c.Logger().Errorf("update project %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update project")
	}
	c.Logger().Infof("updated project %d", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleDeleteProject(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	if err := a.Store.DeleteProject(id); err != nil {
		c.Logger().Errorf("delete project %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete project")
	}
	c.Logger().Infof("deleted project %d", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
