package folio

import (
	"net/url"
	"path"
	"strings"
)

// BuildURL joins path segments onto a base URL, keeping a trailing slash
// on non-root paths.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

const (
	maxStringLen  = 10000
	maxListLen    = 50
	maxListItem   = 500
	maxGalleryLen = 10
	maxSlugLen    = 200
)

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters,
// digits and hyphens only.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// sanitizeString HTML-escapes angle brackets and quotes and caps the length.
// Applied to every free-text field before storage.
func sanitizeString(s string) string {
	r := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	s = r.Replace(s)
	if runes := []rune(s); len(runes) > maxStringLen {
		s = string(runes[:maxStringLen])
	}
	return s
}

// sanitizeList caps a string list in element count and element length and
// drops empty entries. Commas are stripped from elements because the store
// encodes lists comma-delimited.
func sanitizeList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if v == "" {
			continue
		}
		if runes := []rune(v); len(runes) > maxListItem {
			v = string(runes[:maxListItem])
		}
		out = append(out, v)
		if len(out) == maxListLen {
			break
		}
	}
	return out
}

// filterEmpty removes empty/whitespace-only strings from a slice.
func filterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func parseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// joinList stores a list comma-wrapped, preserving element casing. Commas
// are the delimiter, so they are stripped from elements to keep the
// round-trip through parseTags lossless.
func joinList(vals []string) string {
	cleaned := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if v == "" {
			continue
		}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "," + strings.Join(cleaned, ",") + ","
}

// estimateReadingTime returns minutes-to-read from word count (~200 wpm, min 1).
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// yearMonth truncates a stored date ("2024-01-01") to its year-month form.
func yearMonth(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}

// monthToDate widens a year-month input ("2024-01") to a full date for storage.
func monthToDate(s string) string {
	if len(s) == 7 {
		return s + "-01"
	}
	return s
}

// validExperienceType reports whether t is one of the accepted type values.
func validExperienceType(t string) bool {
	for _, v := range ExperienceTypes {
		if v == t {
			return true
		}
	}
	return false
}
