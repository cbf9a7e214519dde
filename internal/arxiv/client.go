package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mrnerf/paperlist/internal/catalog"
	"github.com/mrnerf/paperlist/internal/fetch"
)

const (
	// BaseURL is the arXiv export API endpoint.
	BaseURL = "https://export.arxiv.org/api/query"

	// requestInterval paces API calls per arXiv's usage policy.
	requestInterval = 3 * time.Second
)

// Client is a rate-limited client for the arXiv export API.
type Client struct {
	http    *fetch.Client
	limiter *rate.Limiter
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithFetchClient sets the underlying HTTP client.
func WithFetchClient(fc *fetch.Client) Option {
	return func(c *Client) { c.http = fc }
}

// NewClient creates an arXiv API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    fetch.NewClient(),
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metadata is the raw metadata tuple for one arXiv paper.
type Metadata struct {
	ID        string // identifier, version suffix included when present
	Title     string
	Authors   []string
	Published time.Time
	Abstract  string
	PDFURL    string
	Category  string // primary category term
}

// Raw converts the metadata to the adapter-independent tuple consumed by
// the normalizer.
func (m Metadata) Raw() catalog.RawMetadata {
	return catalog.RawMetadata{
		Title:           m.Title,
		Authors:         m.Authors,
		Year:            m.Published.Year(),
		Abstract:        m.Abstract,
		Paper:           m.PDFURL,
		PublicationDate: m.Published.UTC().Format(time.RFC3339),
		DateSource:      catalog.DateSourceArxiv,
	}
}

// Lookup fetches metadata for exactly one identifier. Zero results yield
// ErrPaperNotFound; network and decode failures are reported as errors,
// never as a partially populated Metadata.
func (c *Client) Lookup(ctx context.Context, id string) (Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Metadata{}, err
	}

	url := fmt.Sprintf("%s?id_list=%s&max_results=1", c.baseURL, id)
	feed, err := c.fetchFeed(ctx, url)
	if err != nil {
		return Metadata{}, err
	}

	for _, entry := range feed.Entries {
		m := parseEntry(entry)
		if m.ID == "" || m.Published.IsZero() {
			// arXiv reports unknown ids as a feed entry pointing at
			// its error page; skip those.
			continue
		}
		return m, nil
	}
	return Metadata{}, fmt.Errorf("id %q: %w", id, ErrPaperNotFound)
}

func (c *Client) fetchFeed(ctx context.Context, url string) (*atomFeed, error) {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("querying arXiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("arXiv API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading arXiv response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", err)
	}
	return &feed, nil
}

// Atom feed structures for the arXiv API response.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"` // e.g. http://arxiv.org/abs/2412.21206v2
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

func parseEntry(entry atomEntry) Metadata {
	m := Metadata{
		Title:    catalog.CleanText(entry.Title),
		Abstract: catalog.CleanText(entry.Summary),
	}

	// The entry id is a URL ending in the arXiv identifier.
	parts := strings.Split(strings.TrimSuffix(entry.ID, "/"), "/")
	if len(parts) > 0 {
		id := parts[len(parts)-1]
		if looseIDPattern.MatchString(id) {
			m.ID = id
			m.PDFURL = PDFURL(id)
		}
	}

	for _, a := range entry.Authors {
		if name := catalog.CleanText(a.Name); name != "" {
			m.Authors = append(m.Authors, name)
		}
	}

	if len(entry.Categories) > 0 {
		m.Category = entry.Categories[0].Term
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		m.Published = t
	}

	return m
}
