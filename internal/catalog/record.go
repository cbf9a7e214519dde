// Package catalog defines the core domain types for paper catalog entries.
package catalog

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record represents one paper entry in the catalog.
//
// Field order matters: the YAML emitter writes keys in declaration order,
// which keeps the persisted catalog diffable across rewrites.
type Record struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Authors  string `yaml:"authors" json:"authors"` // Comma-separated full names, denormalized
	Year     Year   `yaml:"year" json:"year"`
	Abstract string `yaml:"abstract,omitempty" json:"abstract,omitempty"`

	// Optional links. Empty string is the one canonical "absent" value;
	// the loader collapses null and omitted keys to it.
	ProjectPage string `yaml:"project_page,omitempty" json:"project_page,omitempty"`
	Paper       string `yaml:"paper,omitempty" json:"paper,omitempty"`
	Code        string `yaml:"code,omitempty" json:"code,omitempty"`
	Video       string `yaml:"video,omitempty" json:"video,omitempty"`

	Tags      []string `yaml:"tags" json:"tags"`
	Thumbnail string   `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`

	// Publication date backfill (see the backfill command).
	PublicationDate string `yaml:"publication_date,omitempty" json:"publication_date,omitempty"`
	DateSource      string `yaml:"date_source,omitempty" json:"date_source,omitempty"` // arxiv, estimated
}

// Date source values for PublicationDate.
const (
	DateSourceArxiv     = "arxiv"
	DateSourceEstimated = "estimated"
)

// Equal reports whether two records are identical in all fields,
// including tag order.
func (r Record) Equal(other Record) bool {
	if len(r.Tags) != len(other.Tags) {
		return false
	}
	for i := range r.Tags {
		if r.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return r.ID == other.ID &&
		r.Title == other.Title &&
		r.Authors == other.Authors &&
		r.Year == other.Year &&
		r.Abstract == other.Abstract &&
		r.ProjectPage == other.ProjectPage &&
		r.Paper == other.Paper &&
		r.Code == other.Code &&
		r.Video == other.Video &&
		r.Thumbnail == other.Thumbnail &&
		r.PublicationDate == other.PublicationDate &&
		r.DateSource == other.DateSource
}

// FirstAuthorSurname returns the last whitespace-delimited token of the
// first listed author, lowercased. Empty if no authors are set.
func (r Record) FirstAuthorSurname() string {
	first, _, _ := strings.Cut(r.Authors, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// DisplayTags returns the record's tags with derived year tags filtered out.
func (r Record) DisplayTags() []string {
	var tags []string
	for _, t := range r.Tags {
		if !IsYearTag(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

// YearTagPrefix marks derived year tags, e.g. "Year 2024".
const YearTagPrefix = "Year "

// IsYearTag reports whether a tag is a derived year tag.
func IsYearTag(tag string) bool {
	return strings.HasPrefix(tag, YearTagPrefix)
}

// YearTag returns the derived year tag for a year.
func YearTag(year int) string {
	return YearTagPrefix + strconv.Itoa(year)
}

// ThumbnailPath returns the deterministic thumbnail location for a record id.
func ThumbnailPath(id string) string {
	return path.Join("assets", "thumbnails", id+".jpg")
}

// Year is a publication year that unmarshals from the loose spellings found
// in hand-edited catalogs: integer, quoted string, or float.
type Year int

// UnmarshalYAML coerces int, float, and string year values. Strings are
// reduced to their digit run ("2024 (preprint)" parses as 2024).
func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	var i int
	if err := node.Decode(&i); err == nil {
		*y = Year(i)
		return nil
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		*y = Year(int(f))
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("year: cannot decode %q", node.Value)
	}
	n, err := yearFromString(s)
	if err != nil {
		return err
	}
	*y = Year(n)
	return nil
}

// MarshalYAML always emits the year as a plain integer.
func (y Year) MarshalYAML() (interface{}, error) {
	return int(y), nil
}

func (y Year) Int() int { return int(y) }

// yearFromString extracts the digit run from a string year value.
func yearFromString(s string) (int, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("year %q: %w", s, ErrInvalidYear)
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", s, ErrInvalidYear)
	}
	return n, nil
}

// RawMetadata is the origin-independent tuple produced by the metadata
// adapters (arXiv lookup, markdown scrape, manual entry) before
// normalization.
type RawMetadata struct {
	ID          string // Preserved when set (ids are immutable once assigned)
	Title       string
	Authors     []string
	Year        any // int, float64, or string; coerced by Normalize
	Abstract    string
	Paper       string
	ProjectPage string
	Code        string
	Video       string
	Tags        []string
	Thumbnail   string

	PublicationDate string
	DateSource      string
}
