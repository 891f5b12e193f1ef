package folio

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// postPayload is the create/update body. Pointer fields distinguish omitted
// fields from explicit empty values so partial updates leave stored values
// untouched.
type postPayload struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageURL *string `json:"cover_image_url"`
	Category      *string `json:"category"`
	Status        *string `json:"status"`
	ReadingTime   *int    `json:"reading_time"`
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		c.Logger().Errorf("list posts: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleListPublishedPosts(c echo.Context) error {
	posts, err := a.Store.ListPublishedPosts()
	if err != nil {
		c.Logger().Errorf("list published posts: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleGetPost(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" || len(slug) > maxSlugLen {
		return jsonError(c, http.StatusBadRequest, "Invalid slug")
	}
	post, err := a.Store.GetPostBySlug(slug)
	if err == ErrNotFound {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		c.Logger().Errorf("get post %q: %v", slug, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePost(c echo.Context) error {
	var in postPayload
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
	if in.Status != nil && *in.Status != "" && *in.Status != StatusDraft && *in.Status != StatusPublished {
		return jsonError(c, http.StatusBadRequest, "Invalid status")
	}

	p := Post{
		Title:    sanitizeString(title),
		Category: DefaultPostCategory,
		Status:   StatusDraft,
	}
	// Slug derives from the raw title so escaped entities never leak into URLs.
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		p.Slug = Slugify(*in.Slug)
	} else {
		p.Slug = Slugify(title)
	}
	if p.Slug == "" {
		return jsonError(c, http.StatusBadRequest, "Title must contain at least one letter or digit")
	}
	p.Slug = a.ensureUniqueSlug(p.Slug, 0)

	if in.Content != nil {
		p.Content = sanitizeString(*in.Content)
	}
	if in.Excerpt != nil {
		p.Excerpt = sanitizeString(*in.Excerpt)
	}
	if in.CoverImageURL != nil {
		p.CoverImageURL = sanitizeString(*in.CoverImageURL)
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = sanitizeString(*in.Category)
	}
	if in.Status != nil && *in.Status != "" {
		p.Status = *in.Status
	}
	if in.ReadingTime != nil && *in.ReadingTime > 0 {
		p.ReadingTime = *in.ReadingTime
	} else {
		p.ReadingTime = estimateReadingTime(p.Content)
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	created, err := a.Store.CreatePost(p)
	if err != nil {
		c.Logger().Errorf("create post: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create post")
	}
	c.Logger().Infof("created post %d (%s)", created.ID, created.Slug)
	return c.JSON(http.StatusOK, created)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	var in postPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	p, err := a.Store.GetPost(id)
	if err == ErrNotFound {
		return jsonError(c, http.StatusNotFound, "Post not found")
	}
	if err != nil {
		c.Logger().Errorf("update post %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update post")
	}

	titleChanged := false
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		raw := strings.TrimSpace(*in.Title)
		titleChanged = sanitizeString(raw) != p.Title
		p.Title = sanitizeString(raw)
		if titleChanged && in.Slug == nil {
			p.Slug = a.ensureUniqueSlug(Slugify(raw), id)
		}
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		p.Slug = a.ensureUniqueSlug(Slugify(*in.Slug), id)
	}
	if in.Content != nil {
		p.Content = sanitizeString(*in.Content)
	}
	if in.Excerpt != nil {
		p.Excerpt = sanitizeString(*in.Excerpt)
	}
	if in.CoverImageURL != nil {
		p.CoverImageURL = sanitizeString(*in.CoverImageURL)
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = sanitizeString(*in.Category)
	}
	if in.Status != nil && *in.Status != "" {
		if *in.Status != StatusDraft && *in.Status != StatusPublished {
			return jsonError(c, http.StatusBadRequest, "Invalid status")
		}
		p.Status = *in.Status
	}
	if in.ReadingTime != nil && *in.ReadingTime > 0 {
		p.ReadingTime = *in.ReadingTime
	}
	p.UpdatedAt = now()

	if err := a.Store.UpdatePost(p); err != nil {
		c.Logger().Errorf("update post %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update post")
	}
	c.Logger().Infof("updated post %d (%s)", p.ID, p.Slug)
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleDeletePost(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	if err := a.Store.DeletePost(id); err != nil {
		c.Logger().Errorf("delete post %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete post")
	}
	c.Logger().Infof("deleted post %d", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ensureUniqueSlug appends a counter if the slug is already taken by a
// different post.
func (a *App) ensureUniqueSlug(slug string, selfID int64) string {
	candidate := slug
	counter := 1
	for {
		existing, err := a.Store.GetPostBySlug(candidate)
		if err != nil || existing.ID == selfID {
			return candidate
		}
		counter++
		candidate = fmt.Sprintf("%s-%d", slug, counter)
	}
}
