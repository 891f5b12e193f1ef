package folio

// Post is a blog/daily-log entry. JSON field names match the persisted
// snake_case columns, which is what the original API exposed.
type Post struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"` // HTML from the editor
	Excerpt       string `json:"excerpt"`
	CoverImageURL string `json:"cover_image_url"`
	Category      string `json:"category"`
	Status        string `json:"status"` // "draft" or "published"
	ReadingTime   int    `json:"reading_time"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// PostCategories is the fixed set of post categories.
var PostCategories = []string{
	"Data Science",
	"Web Development",
	"IT Audit & COBIT",
	"Jurnal & Catatan",
	"Daily Log",
}

// DefaultPostCategory is assigned when a create payload omits the category.
const DefaultPostCategory = "Jurnal & Catatan"

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Experience is a timeline entry (work, education, volunteering, ...).
type Experience struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Period       string   `json:"period"` // free-text display period
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Image        string   `json:"image"`     // legacy single image; first of Images
	Images       []string `json:"images"`    // gallery, capped at 10
	StartDate    string   `json:"startDate"` // YYYY-MM, used for chronological grouping
	Tags         []string `json:"tags"`
	SortOrder    int      `json:"sortOrder"`
}

// ExperienceTypes enumerates the accepted experience type values.
var ExperienceTypes = []string{"work", "internship", "education", "program", "organization", "volunteer"}

// Project is a portfolio project card.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	Category    string   `json:"category"`
}

// DefaultProjectCategory is assigned when a create payload omits the category.
const DefaultProjectCategory = "Web Development"

// Certification is an earned credential. Issue and expiry dates are
// year-month strings ("2024-01"); whether one is expired is derived at
// read time, never stored.
type Certification struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Organization  string   `json:"organization"`
	IssueDate     string   `json:"issueDate"`  // YYYY-MM
	ExpiryDate    string   `json:"expiryDate"` // YYYY-MM or empty
	CredentialID  string   `json:"credentialId"`
	CredentialURL string   `json:"credentialUrl"`
	Image         string   `json:"image"`
	Skills        []string `json:"skills"`
}

// SiteSettings is the flat branding/contact record served by /api/settings.
// Stored as individual key-value rows and merged over defaults on read.
type SiteSettings map[string]string

// DefaultSettings returns the hardcoded default settings record.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		"site_name":        "Portfolio",
		"site_description": "Personal portfolio and blog",
		"hero_title":       "Hi, I build things.",
		"hero_subtitle":    "",
		"contact_email":    "",
		"github_url":       "",
		"linkedin_url":     "",
	}
}

// Image is an uploaded image's stored metadata.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
	URL          string `json:"url,omitempty"` // public path, set on upload responses
}
