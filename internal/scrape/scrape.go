// Package scrape parses a semi-structured markdown paper list into raw
// metadata candidates. It tolerates missing link categories and stops at a
// designated terminator section.
package scrape

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// Options controls which slice of the document is parsed.
type Options struct {
	// StartMarker is the heading that begins the paper sections. Empty
	// means parse from the top.
	StartMarker string

	// Terminator is the heading that ends parsing. Empty means parse to
	// EOF.
	Terminator string
}

// DefaultOptions returns the markers used by the upstream awesome-list
// README layout.
func DefaultOptions() Options {
	return Options{
		StartMarker: "## Seminal Paper",
		Terminator:  "## Data",
	}
}

// Paper is one scraped entry before normalization.
type Paper struct {
	Title       string
	Authors     string // comma-separated, as written in the document
	Year        string // from the enclosing year section, may be empty
	Category    string // from the enclosing category section
	Tag         string // bracketed tag on the paper heading, may be empty
	Abstract    string
	Paper       string
	ProjectPage string
	Code        string
	Video       string
}

// Raw converts a scraped entry to the adapter-independent tuple.
func (p Paper) Raw() catalog.RawMetadata {
	raw := catalog.RawMetadata{
		Title:       p.Title,
		Abstract:    p.Abstract,
		Paper:       p.Paper,
		ProjectPage: p.ProjectPage,
		Code:        p.Code,
		Video:       p.Video,
		Year:        p.Year,
	}
	for _, a := range strings.Split(p.Authors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			raw.Authors = append(raw.Authors, a)
		}
	}
	if p.Tag != "" {
		raw.Tags = append(raw.Tags, p.Tag)
	}
	return raw
}

var (
	yearHeading = regexp.MustCompile(`^## (\d{4}):`)
	bracketTag  = regexp.MustCompile(`\[(.*?)\]`)

	// Emoji-prefixed markdown links mark the link fields.
	linkPatterns = map[string]*regexp.Regexp{
		"paper":   linkPattern("📄"),
		"project": linkPattern("🌐"),
		"code":    linkPattern("💻"),
		"video":   linkPattern("🎥"),
	}
)

func linkPattern(emoji string) *regexp.Regexp {
	return regexp.MustCompile(`\[` + emoji + ` (.*?)\]\((.*?)\)`)
}

// Parse scans the document and returns all complete paper entries. An entry
// is emitted once its link line is seen; entries missing every link category
// are dropped (they are section notes, not papers).
func Parse(r io.Reader, opts Options) ([]Paper, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		papers             []Paper
		current            Paper
		year, category     string
		started            = opts.StartMarker == ""
		collectingAbstract bool
		abstractLines      []string
	)

	for scanner.Scan() {
		line := scanner.Text()

		if !started {
			if strings.Contains(line, opts.StartMarker) {
				started = true
			} else {
				continue
			}
		}
		if opts.Terminator != "" && strings.Contains(line, opts.Terminator) {
			break
		}

		switch {
		case strings.HasPrefix(line, "### "):
			title := strings.TrimSpace(strings.TrimPrefix(line, "### "))
			current = Paper{Year: year, Category: category}
			if m := bracketTag.FindStringSubmatch(title); m != nil {
				current.Tag = strings.TrimSpace(m[1])
				title = strings.TrimSpace(bracketTag.ReplaceAllString(title, ""))
			}
			current.Title = title
			collectingAbstract = false
			abstractLines = nil

		case strings.HasPrefix(line, "## "):
			if m := yearHeading.FindStringSubmatch(line); m != nil {
				year = m[1]
			} else {
				category = strings.Trim(strings.TrimPrefix(line, "## "), ": ")
			}

		case strings.Contains(line, "**Authors**:"):
			_, authors, _ := strings.Cut(line, "**Authors**:")
			current.Authors = strings.TrimSpace(authors)

		case strings.Contains(line, "<details"):
			collectingAbstract = true
			abstractLines = nil

		case collectingAbstract:
			if strings.Contains(line, "</details>") {
				collectingAbstract = false
				// First collected line is the <summary> tag.
				if len(abstractLines) > 0 {
					abstractLines = abstractLines[1:]
				}
				current.Abstract = catalog.CleanText(strings.Join(abstractLines, " "))
				abstractLines = nil
			} else {
				abstractLines = append(abstractLines, line)
			}

		default:
			if p, ok := parseLinks(line, current); ok {
				p.Year, p.Category = year, category
				papers = append(papers, p)
				current = Paper{Year: year, Category: category}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return papers, nil
}

// parseLinks fills the current entry's link fields from an emoji link line.
// Absent categories stay empty; ok is false when the line carries no links.
func parseLinks(line string, current Paper) (Paper, bool) {
	found := false
	for field, pattern := range linkPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		found = true
		url := strings.TrimSpace(m[2])
		switch field {
		case "paper":
			current.Paper = url
		case "project":
			current.ProjectPage = url
		case "code":
			current.Code = url
		case "video":
			current.Video = url
		}
	}
	return current, found && current.Title != ""
}
