package arxiv

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// idPattern is the modern arXiv identifier: 4 digits, dot, 4-5 digits,
// optional version suffix.
var idPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)

// looseIDPattern finds an arXiv identifier anywhere inside a URL.
var looseIDPattern = regexp.MustCompile(`\d{4}\.\d{4,5}(?:v\d+)?`)

// ExtractID reduces an arXiv URL or bare identifier to the identifier.
//
//	https://arxiv.org/abs/2412.21206v2 -> 2412.21206v2
//	arxiv.org/pdf/2412.21206.pdf       -> 2412.21206
//	2412.21206                         -> 2412.21206
func ExtractID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if idPattern.MatchString(s) {
		// Already a bare identifier; URL parsing would put it in the
		// host and lose it.
		return s, nil
	}
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", urlOrID, ErrInvalidIdentifier)
	}

	var id string
	if strings.Contains(u.Path, "abs") || strings.Contains(u.Path, "pdf") {
		parts := strings.Split(u.Path, "/")
		id = strings.TrimSuffix(parts[len(parts)-1], ".pdf")
	} else {
		id = strings.Trim(u.Path, "/")
	}

	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("%q: %w", urlOrID, ErrInvalidIdentifier)
	}
	return id, nil
}

// FindIDInURL scans an arxiv.org URL for an identifier. Returns "" when the
// URL is not an arXiv link or carries no identifier; used by the date
// backfill, where absence is not an error.
func FindIDInURL(paperURL string) string {
	if !strings.Contains(paperURL, "arxiv.org") {
		return ""
	}
	return looseIDPattern.FindString(paperURL)
}

// PDFURL returns the canonical PDF location for an identifier.
func PDFURL(id string) string {
	return "https://arxiv.org/pdf/" + id + ".pdf"
}
