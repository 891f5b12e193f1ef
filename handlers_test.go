package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(Config{
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
		AdminEmail:    "admin@example.com",
		AdminPassword: "test-password",
		SessionSecret: "test-session-secret",
		RateLimit:     1000,
		RateBurst:     1000,
		StaticDir:     t.TempDir(),
	})
	if err := a.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func doJSON(t *testing.T, a *App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	rec := doJSON(t, a, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["timestamp"] == "" {
		t.Error("timestamp should be set")
	}
}

func TestCreatePostAssignsSlugAndReadingTime(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{
		"title":   "Hello World",
		"content": "<p>Some content here</p>",
		"status":  "published",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	post := decodeBody[Post](t, rec)
	if post.ID == 0 {
		t.Error("id should be assigned")
	}
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want hello-world", post.Slug)
	}
	if post.ReadingTime < 1 {
		t.Errorf("reading_time = %d, want >= 1", post.ReadingTime)
	}
	if post.CreatedAt == "" || post.UpdatedAt == "" {
		t.Error("timestamps should be set")
	}

	rec = doJSON(t, a, http.MethodGet, "/api/posts/hello-world", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get by slug status = %d", rec.Code)
	}
	got := decodeBody[Post](t, rec)
	if got.ID != post.ID {
		t.Errorf("fetched id = %d, want %d", got.ID, post.ID)
	}
}

func TestCreatePostValidation(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"content": "no title"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank title status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Ok", "status": "archived"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "!!!"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsluggable title status = %d, want 400", rec.Code)
	}
}

func TestCreatePostSlugFromNonASCIITitle(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Café déjà vu!!"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	post := decodeBody[Post](t, rec)
	if post.Slug != "caf-d-j-vu" {
		t.Errorf("slug = %q, want caf-d-j-vu", post.Slug)
	}
}

func TestCreatePostDuplicateTitlesGetUniqueSlugs(t *testing.T) {
	a := newTestApp(t)

	first := decodeBody[Post](t, doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Same Title"}))
	second := decodeBody[Post](t, doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Same Title"}))

	if first.Slug != "same-title" {
		t.Errorf("first slug = %q, want same-title", first.Slug)
	}
	if second.Slug == first.Slug {
		t.Errorf("second slug %q should differ from the first", second.Slug)
	}
	if second.Slug != "same-title-2" {
		t.Errorf("second slug = %q, want same-title-2", second.Slug)
	}
}

func TestCreatePostSanitizesHTML(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "XSS <script>attempt</script>"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	post := decodeBody[Post](t, rec)
	if post.Title != "XSS &lt;script&gt;attempt&lt;/script&gt;" {
		t.Errorf("title = %q, want escaped angle brackets", post.Title)
	}
	// The slug comes from the raw title, so no escape entities leak in.
	if post.Slug != "xss-script-attempt-script" {
		t.Errorf("slug = %q, want xss-script-attempt-script", post.Slug)
	}
}

func TestUpdatePostPartialBody(t *testing.T) {
	a := newTestApp(t)

	post := decodeBody[Post](t, doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{
		"title":   "Keep My Title",
		"excerpt": "old excerpt",
	}))

	rec := doJSON(t, a, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), map[string]any{
		"excerpt": "new excerpt",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[Post](t, rec)
	if updated.Title != "Keep My Title" {
		t.Errorf("title = %q, omitted fields must keep their value", updated.Title)
	}
	if updated.Excerpt != "new excerpt" {
		t.Errorf("excerpt = %q, want new excerpt", updated.Excerpt)
	}
}

func TestUpdatePostQueryParamConvention(t *testing.T) {
	a := newTestApp(t)

	post := decodeBody[Post](t, doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Query Convention"}))

	rec := doJSON(t, a, http.MethodPut, fmt.Sprintf("/api/posts?id=%d", post.ID), map[string]any{"excerpt": "via query"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[Post](t, rec)
	if updated.Excerpt != "via query" {
		t.Errorf("excerpt = %q, want via query", updated.Excerpt)
	}

	rec = doJSON(t, a, http.MethodDelete, fmt.Sprintf("/api/posts?id=%d", post.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestUpdatePostErrors(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPut, "/api/posts/999", map[string]any{"title": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPut, "/api/posts/abc", map[string]any{"title": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPut, "/api/posts/-1", map[string]any{"title": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative id status = %d, want 400", rec.Code)
	}
}

func TestDeletePostIdempotent(t *testing.T) {
	a := newTestApp(t)

	post := decodeBody[Post](t, doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Delete Me"}))

	for i := 0; i < 2; i++ {
		rec := doJSON(t, a, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete #%d status = %d, want 200", i+1, rec.Code)
		}
		body := decodeBody[map[string]bool](t, rec)
		if !body["success"] {
			t.Errorf("delete #%d success = false, want true", i+1)
		}
	}
}

func TestGetPostInvalidSlug(t *testing.T) {
	a := newTestApp(t)

	long := make([]byte, maxSlugLen+1)
	for i := range long {
		long[i] = 'a'
	}
	rec := doJSON(t, a, http.MethodGet, "/api/posts/"+string(long), nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized slug status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodGet, "/api/posts/not-there", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing slug status = %d, want 404", rec.Code)
	}
}

func TestExperienceDefaultsAndValidation(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/experiences", map[string]any{"title": "First Role"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	exp := decodeBody[Experience](t, rec)
	if exp.Type != "work" {
		t.Errorf("type = %q, want work default", exp.Type)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/experiences", map[string]any{"title": "Bad", "type": "freelance"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid type status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/experiences", map[string]any{"type": "work"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", rec.Code)
	}
}

func TestExperienceAcceptsSnakeCaseStartDate(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/experiences", map[string]any{
		"title":      "Legacy Client",
		"start_date": "2023-05",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	exp := decodeBody[Experience](t, rec)
	if exp.StartDate != "2023-05" {
		t.Errorf("startDate = %q, want 2023-05 from snake_case input", exp.StartDate)
	}
}

func TestExperienceGalleryDrivesCoverImage(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/experiences", map[string]any{
		"title":  "With Gallery",
		"images": []string{"/public/uploads/a.jpg", "/public/uploads/b.jpg"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	exp := decodeBody[Experience](t, rec)
	if exp.Image != "/public/uploads/a.jpg" {
		t.Errorf("cover image = %q, want first gallery entry", exp.Image)
	}
	if len(exp.Images) != 2 {
		t.Errorf("gallery size = %d, want 2", len(exp.Images))
	}
}

func TestProjectDefaultCategory(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/projects", map[string]any{"title": "Side Project"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	p := decodeBody[Project](t, rec)
	if p.Category != DefaultProjectCategory {
		t.Errorf("category = %q, want %q", p.Category, DefaultProjectCategory)
	}
}

func TestProjectTagsRoundTripWithCasing(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/projects", map[string]any{
		"title": "Frontend",
		"tags":  []string{"React", "Node.js"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[Project](t, rec)
	if len(created.Tags) != 2 || created.Tags[0] != "React" || created.Tags[1] != "Node.js" {
		t.Fatalf("create echoed tags %v, want [React Node.js]", created.Tags)
	}

	rec = doJSON(t, a, http.MethodGet, "/api/projects", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	list := decodeBody[[]Project](t, rec)
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	got := list[0].Tags
	if len(got) != 2 || got[0] != created.Tags[0] || got[1] != created.Tags[1] {
		t.Errorf("read back tags %v, want %v", got, created.Tags)
	}
}

func TestCertificationDualNamingAndDates(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/certifications", map[string]any{
		"name":          "Terraform Associate",
		"organization":  "HashiCorp",
		"issueDate":     "2024-06",
		"credential_id": "HCTA-001",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	cert := decodeBody[Certification](t, rec)
	if cert.IssueDate != "2024-06" {
		t.Errorf("issueDate = %q, want 2024-06", cert.IssueDate)
	}
	if cert.CredentialID != "HCTA-001" {
		t.Errorf("credentialId = %q, want value from snake_case input", cert.CredentialID)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/certifications", map[string]any{"organization": "No Name"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", rec.Code)
	}
}

func TestSettingsUpsert(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/api/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	settings := decodeBody[map[string]string](t, rec)
	if settings["site_name"] != "Portfolio" {
		t.Errorf("default site_name = %q, want Portfolio", settings["site_name"])
	}

	rec = doJSON(t, a, http.MethodPost, "/api/settings", map[string]string{"key": "site_name", "value": "My Corner"})
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, a, http.MethodPost, "/api/settings", map[string]string{"value": "no key"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing key status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/settings/bulk", map[string]string{
		"hero_title":    "Welcome",
		"contact_email": "me@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk status = %d, body %s", rec.Code, rec.Body.String())
	}

	settings = decodeBody[map[string]string](t, doJSON(t, a, http.MethodGet, "/api/settings", nil))
	if settings["site_name"] != "My Corner" || settings["hero_title"] != "Welcome" {
		t.Errorf("settings after upserts = %v", settings)
	}
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "test-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login should set a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec2, req)
	me := decodeBody[map[string]any](t, rec2)
	if me["authenticated"] != true {
		t.Errorf("auth/me = %v, want authenticated true", me)
	}
	if me["email"] != "admin@example.com" {
		t.Errorf("auth/me email = %v", me["email"])
	}

	// Without the cookie the session is anonymous.
	rec = doJSON(t, a, http.MethodGet, "/api/auth/me", nil)
	me = decodeBody[map[string]any](t, rec)
	if me["authenticated"] != false {
		t.Errorf("anonymous auth/me = %v, want authenticated false", me)
	}
}

func TestLoginValidation(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email", "password": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed email status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password status = %d, want 400", rec.Code)
	}
}

func TestImagesRequireAdmin(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/api/images", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous image list status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, a, http.MethodDelete, "/api/images/some.jpg", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous image delete status = %d, want 401", rec.Code)
	}
}

func TestAPIErrorsAreJSON(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodGet, "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] == "" {
		t.Errorf("API 404 should carry a JSON error, got %s", rec.Body.String())
	}
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t)

	doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Feed Me", "status": "published"})
	doJSON(t, a, http.MethodPost, "/api/posts", map[string]any{"title": "Draft Hidden"})

	rec := doJSON(t, a, http.MethodGet, "/feed.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d", rec.Code)
	}
	feed := rec.Body.String()
	if !bytes.Contains([]byte(feed), []byte("feed-me")) {
		t.Error("feed should contain the published post")
	}
	if bytes.Contains([]byte(feed), []byte("draft-hidden")) {
		t.Error("feed must not contain drafts")
	}

	rec = doJSON(t, a, http.MethodGet, "/sitemap.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("feed-me")) {
		t.Error("sitemap should contain the published post")
	}
}
