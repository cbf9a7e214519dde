// Package pdfid extracts arXiv identifiers from local PDF files.
package pdfid

import (
	"regexp"

	"github.com/ledongthuc/pdf"
)

// arXiv stamps the identifier in the margin of the first page,
// e.g. "arXiv:2412.21206v2".
var stampPattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5}(?:v\d+)?)`)

// bareIDPattern is the fallback when the stamp text got mangled.
var bareIDPattern = regexp.MustCompile(`\d{4}\.\d{4,5}(?:v\d+)?`)

// ExtractArxivID scans the first few pages of a PDF for an arXiv
// identifier. Returns "" when none is found (not an error).
func ExtractArxivID(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The stamp is on the first page; scan a couple more as a fallback.
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if id := findID(text, i == 1); id != "" {
			return id, nil
		}
	}

	return "", nil
}

// findID looks for the arXiv stamp in page text. The bare-identifier
// fallback only applies to the first page, where the stamp lives; on later
// pages a bare number match is more likely a citation.
func findID(text string, firstPage bool) string {
	if m := stampPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if firstPage {
		return bareIDPattern.FindString(text)
	}
	return ""
}
