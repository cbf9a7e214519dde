package arxiv

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultDiscoverLimit caps results per keyword query.
const DefaultDiscoverLimit = 100

// DiscoveredPaper is a search hit with the keywords that matched it and any
// links mined from its abstract.
type DiscoveredPaper struct {
	Metadata
	Keywords     []string
	CodeLinks    []string
	ProjectPages []string
}

// Discover searches arXiv for each keyword, keeps papers submitted within
// the lookback window, and deduplicates by identifier, merging the matched
// keywords. Results are sorted newest-first.
func (c *Client) Discover(ctx context.Context, keywords []string, lookback time.Duration, limit int) ([]DiscoveredPaper, error) {
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}
	cutoff := time.Now().UTC().Add(-lookback)

	unique := make(map[string]*DiscoveredPaper)
	for _, keyword := range keywords {
		feed, err := c.search(ctx, keyword, limit)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}

		for _, entry := range feed.Entries {
			m := parseEntry(entry)
			if m.ID == "" || m.Published.Before(cutoff) {
				continue
			}
			if p, ok := unique[m.ID]; ok {
				p.Keywords = appendUnique(p.Keywords, keyword)
				continue
			}
			code, pages := extractAbstractLinks(m.Abstract)
			unique[m.ID] = &DiscoveredPaper{
				Metadata:     m,
				Keywords:     []string{keyword},
				CodeLinks:    code,
				ProjectPages: pages,
			}
		}
	}

	papers := make([]DiscoveredPaper, 0, len(unique))
	for _, p := range unique {
		papers = append(papers, *p)
	}
	sort.Slice(papers, func(i, j int) bool {
		if !papers[i].Published.Equal(papers[j].Published) {
			return papers[i].Published.After(papers[j].Published)
		}
		return papers[i].ID < papers[j].ID
	})
	return papers, nil
}

func (c *Client) search(ctx context.Context, query string, limit int) (*atomFeed, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s?search_query=%s&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		c.baseURL, url.QueryEscape(query), limit)
	return c.fetchFeed(ctx, u)
}

// Patterns for mining code and project-page links out of abstracts. Authors
// routinely put these in the abstract text rather than structured metadata.
var (
	codeLinkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)github\.com/[\w-]+/[\w-]+`),
		regexp.MustCompile(`(?i)gitlab\.com/[\w-]+/[\w-]+`),
		regexp.MustCompile(`(?i)code:.*?https?://[^\s]+`),
	}
	projectLinkPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)project page:.*?https?://[^\s]+`),
		regexp.MustCompile(`(?i)project website:.*?https?://[^\s]+`),
		regexp.MustCompile(`(?i)webpage:.*?https?://[^\s]+`),
	}
)

func extractAbstractLinks(abstract string) (code, pages []string) {
	for _, p := range codeLinkPatterns {
		for _, m := range p.FindAllString(abstract, -1) {
			if i := strings.Index(m, "http"); i > 0 {
				m = m[i:]
			}
			if !strings.HasPrefix(m, "http") {
				m = "https://" + m
			}
			code = appendUnique(code, strings.TrimRight(m, ".,;"))
		}
	}
	for _, p := range projectLinkPatterns {
		for _, m := range p.FindAllString(abstract, -1) {
			if i := strings.Index(m, "http"); i >= 0 {
				m = m[i:]
			}
			pages = appendUnique(pages, strings.TrimRight(m, ".,;"))
		}
	}
	return code, pages
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
