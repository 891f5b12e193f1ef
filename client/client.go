package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eringen/folio"
)

// Cache entry kinds.
const (
	kindPosts          = "posts"
	kindPublishedPosts = "published_posts"
	kindExperiences    = "experiences"
	kindProjects       = "projects"
	kindCertifications = "certifications"
	kindSettings       = "settings"
)

// Client wraps the folio REST API with TTL-cached reads.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cacheStore
}

// Option configures a Client.
type Option func(*Client)

// WithTTL overrides the cache freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = newCacheStore(ttl) }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:4000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   newCacheStore(DefaultTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate clears the read cache.
func (c *Client) Invalidate() { c.cache.invalidate() }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// cachedList serves kind from cache when fresh, refetches otherwise, and
// falls back to stale data or an empty slice when the fetch fails.
func cachedList[T any](ctx context.Context, c *Client, kind, path string, force bool) []T {
	if !force {
		if data, fresh, _ := c.cache.get(kind); fresh {
			return data.([]T)
		}
	}
	var fetched []T
	if err := c.do(ctx, http.MethodGet, path, nil, &fetched); err != nil {
		if data, _, present := c.cache.get(kind); present {
			return data.([]T)
		}
		return []T{}
	}
	if fetched == nil {
		fetched = []T{}
	}
	c.cache.put(kind, fetched)
	return fetched
}

// Posts returns all posts, drafts included.
func (c *Client) Posts(ctx context.Context, force bool) []folio.Post {
	return cachedList[folio.Post](ctx, c, kindPosts, "/posts", force)
}

// PublishedPosts returns published posts only.
func (c *Client) PublishedPosts(ctx context.Context, force bool) []folio.Post {
	return cachedList[folio.Post](ctx, c, kindPublishedPosts, "/posts/published", force)
}

// Experiences returns the experience timeline.
func (c *Client) Experiences(ctx context.Context, force bool) []folio.Experience {
	return cachedList[folio.Experience](ctx, c, kindExperiences, "/experiences", force)
}

// Projects returns all projects.
func (c *Client) Projects(ctx context.Context, force bool) []folio.Project {
	return cachedList[folio.Project](ctx, c, kindProjects, "/projects", force)
}

// Certifications returns all certifications.
func (c *Client) Certifications(ctx context.Context, force bool) []folio.Certification {
	return cachedList[folio.Certification](ctx, c, kindCertifications, "/certifications", force)
}

// PostBySlug fetches one post. ok is false when the post does not exist or
// the API is unreachable.
func (c *Client) PostBySlug(ctx context.Context, slug string) (folio.Post, bool) {
	var p folio.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+slug, nil, &p); err != nil {
		return folio.Post{}, false
	}
	return p, true
}

// Settings returns the site settings, falling back to stale cache and then
// the built-in defaults.
func (c *Client) Settings(ctx context.Context, force bool) folio.SiteSettings {
	if !force {
		if data, fresh, _ := c.cache.get(kindSettings); fresh {
			return data.(folio.SiteSettings)
		}
	}
	var s folio.SiteSettings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &s); err != nil {
		if data, _, present := c.cache.get(kindSettings); present {
			return data.(folio.SiteSettings)
		}
		return folio.DefaultSettings()
	}
	c.cache.put(kindSettings, s)
	return s
}

// Mutations. These return explicit errors and do not touch the read cache;
// callers decide when stale reads matter enough to force a refresh.

func (c *Client) CreatePost(ctx context.Context, p folio.Post) (folio.Post, error) {
	var out folio.Post
	err := c.do(ctx, http.MethodPost, "/posts", p, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id int64, p folio.Post) (folio.Post, error) {
	var out folio.Post
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), p, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

func (c *Client) CreateExperience(ctx context.Context, e folio.Experience) (folio.Experience, error) {
	var out folio.Experience
	err := c.do(ctx, http.MethodPost, "/experiences", e, &out)
	return out, err
}

func (c *Client) UpdateExperience(ctx context.Context, id int64, e folio.Experience) (folio.Experience, error) {
	var out folio.Experience
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/experiences/%d", id), e, &out)
	return out, err
}

func (c *Client) DeleteExperience(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/experiences/%d", id), nil, nil)
}

func (c *Client) CreateProject(ctx context.Context, p folio.Project) (folio.Project, error) {
	var out folio.Project
	err := c.do(ctx, http.MethodPost, "/projects", p, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id int64, p folio.Project) (folio.Project, error) {
	var out folio.Project
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (c *Client) CreateCertification(ctx context.Context, cert folio.Certification) (folio.Certification, error) {
	var out folio.Certification
	err := c.do(ctx, http.MethodPost, "/certifications", cert, &out)
	return out, err
}

func (c *Client) UpdateCertification(ctx context.Context, id int64, cert folio.Certification) (folio.Certification, error) {
	var out folio.Certification
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/certifications/%d", id), cert, &out)
	return out, err
}

func (c *Client) DeleteCertification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/certifications/%d", id), nil, nil)
}

func (c *Client) SaveSetting(ctx context.Context, key, value string) error {
	return c.do(ctx, http.MethodPost, "/settings", map[string]string{"key": key, "value": value}, nil)
}
