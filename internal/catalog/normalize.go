package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

// MinYear is the oldest publication year the catalog accepts.
const MinYear = 1900

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses internal whitespace and newlines to single spaces and
// trims the ends.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// CoerceYear converts a loosely typed year value (int, float, or string) to
// an integer and range-checks it against [MinYear, current_year+1].
func CoerceYear(v any) (int, error) {
	var year int
	switch y := v.(type) {
	case int:
		year = y
	case int64:
		year = int(y)
	case float64:
		year = int(y)
	case Year:
		year = y.Int()
	case string:
		n, err := yearFromString(y)
		if err != nil {
			return 0, err
		}
		year = n
	case nil:
		return 0, fmt.Errorf("year missing: %w", ErrInvalidYear)
	default:
		return 0, fmt.Errorf("year has unsupported type %T: %w", v, ErrInvalidYear)
	}

	// Allow next year for preprints posted ahead of publication.
	if year < MinYear || year > time.Now().Year()+1 {
		return 0, fmt.Errorf("year %d out of range: %w", year, ErrInvalidYear)
	}
	return year, nil
}

// Normalize converts a raw metadata tuple into a Record satisfying the
// catalog invariants: cleaned text, integer year, canonical absent-URL
// representation, derived id, sorted deduplicated tags, and a default
// thumbnail path. It does not touch the catalog itself.
func Normalize(raw RawMetadata) (Record, error) {
	title := CleanText(raw.Title)
	if title == "" {
		return Record{}, fmt.Errorf("title is required: %w", ErrMalformedRecord)
	}

	var names []string
	for _, a := range raw.Authors {
		if a = CleanText(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return Record{}, fmt.Errorf("authors are required: %w", ErrMalformedRecord)
	}
	authors := strings.Join(names, ", ")

	year, err := CoerceYear(raw.Year)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Title:           title,
		Authors:         authors,
		Year:            Year(year),
		Abstract:        CleanText(raw.Abstract),
		PublicationDate: raw.PublicationDate,
		DateSource:      raw.DateSource,
	}

	for _, f := range []struct {
		name string
		src  string
		dst  *string
	}{
		{"project_page", raw.ProjectPage, &rec.ProjectPage},
		{"paper", raw.Paper, &rec.Paper},
		{"code", raw.Code, &rec.Code},
		{"video", raw.Video, &rec.Video},
	} {
		u, err := normalizeURL(f.src)
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = u
	}

	// Ids are immutable once assigned; only derive one for new records.
	rec.ID = raw.ID
	if rec.ID == "" {
		surname := rec.FirstAuthorSurname()
		firstWord, _, _ := strings.Cut(title, " ")
		rec.ID, err = GenerateID(surname, year, firstWord)
		if err != nil {
			return Record{}, err
		}
	}

	rec.Tags = normalizeTags(raw.Tags, rec)

	rec.Thumbnail = strings.TrimSpace(raw.Thumbnail)
	if rec.Thumbnail == "" {
		rec.Thumbnail = ThumbnailPath(rec.ID)
	}

	return rec, nil
}

// normalizeURL trims a link field and verifies it is a well-formed http(s)
// URL. Empty input is the canonical absent value.
func normalizeURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%q is not an http(s) URL: %w", s, ErrMalformedRecord)
	}
	return s, nil
}

// normalizeTags produces the final sorted, deduplicated tag set. The derived
// year tag is always regenerated from the year field (which is
// authoritative); supplied year tags are discarded. When no descriptive tags
// were supplied, link-derived tags are inferred.
func normalizeTags(supplied []string, rec Record) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	for _, t := range supplied {
		if t = CleanText(t); !IsYearTag(t) {
			add(t)
		}
	}

	if len(tags) == 0 {
		if rec.ProjectPage != "" {
			add("Project")
		}
		if rec.Code != "" {
			add("Code")
		}
		if rec.Video != "" {
			add("Video")
		}
	}

	add(YearTag(rec.Year.Int()))
	sort.Strings(tags)
	return tags
}
