// Package render projects the catalog into a static, filterable HTML page.
// Building the page model is pure; rendering the same catalog twice
// produces identical output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// Page is the structural model of the generated page.
type Page struct {
	Title      string
	Years      []int    // distinct years, descending, for the year filter
	TagFilters []string // distinct non-year tags, sorted, for tag filters
	Cards      []Card   // one per record, in catalog order
}

// Card carries the renderable fields of one record.
type Card struct {
	ID        string
	Title     string
	Authors   string
	Year      int
	Tags      []string // display tags, year tags excluded
	TagsJSON  string   // full tag set as JSON, for client-side filtering
	Links     []Link   // present links only; absent ones are omitted entirely
	Abstract  string   // optional, collapsible
	Thumbnail string
}

// Link is one present link field.
type Link struct {
	Label string // Project Page, Paper, Code, Video
	URL   string
}

// DefaultPageTitle is used when no title is configured.
const DefaultPageTitle = "Paper List"

// BuildPage computes the page model for a catalog. It has no side effects;
// record order is preserved and filter lists are sorted so output is
// deterministic.
func BuildPage(title string, records []catalog.Record) (Page, error) {
	if title == "" {
		title = DefaultPageTitle
	}
	page := Page{Title: title}

	yearSet := make(map[int]bool)
	tagSet := make(map[string]bool)

	for _, r := range records {
		yearSet[r.Year.Int()] = true
		for _, t := range r.DisplayTags() {
			tagSet[t] = true
		}

		tagsJSON, err := json.Marshal(r.Tags)
		if err != nil {
			return Page{}, fmt.Errorf("encoding tags for %s: %w", r.ID, err)
		}

		card := Card{
			ID:        r.ID,
			Title:     r.Title,
			Authors:   r.Authors,
			Year:      r.Year.Int(),
			Tags:      r.DisplayTags(),
			TagsJSON:  string(tagsJSON),
			Abstract:  r.Abstract,
			Thumbnail: r.Thumbnail,
		}
		for _, l := range []Link{
			{"Project Page", r.ProjectPage},
			{"Paper", r.Paper},
			{"Code", r.Code},
			{"Video", r.Video},
		} {
			if l.URL != "" {
				card.Links = append(card.Links, l)
			}
		}
		page.Cards = append(page.Cards, card)
	}

	for y := range yearSet {
		page.Years = append(page.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(page.Years)))

	for t := range tagSet {
		page.TagFilters = append(page.TagFilters, t)
	}
	sort.Strings(page.TagFilters)

	return page, nil
}

// WriteHTML renders the page model to w.
func WriteHTML(w io.Writer, page Page) error {
	return compiledTemplate.Execute(w, page)
}
