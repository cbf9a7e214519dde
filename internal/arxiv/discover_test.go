package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func discoverFixture(id, published string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/%s</id>
    <title>Paper %s</title>
    <summary>Gaussian splatting paper. Code: https://github.com/example/repo.
 Project page: https://example.com/project.</summary>
    <published>%s</published>
    <author><name>Ada Lovelace</name></author>
    <category term="cs.GR"/>
  </entry>
</feed>`, id, id, published)
}

func TestDiscover(t *testing.T) {
	recent := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	stale := time.Now().UTC().Add(-90 * 24 * time.Hour).Format(time.RFC3339)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("sortBy"); got != "submittedDate" {
			t.Errorf("sortBy = %q", got)
		}
		switch r.URL.Query().Get("search_query") {
		case "gaussian splatting":
			fmt.Fprint(w, discoverFixture("2501.11111v1", recent))
		case "old stuff":
			fmt.Fprint(w, discoverFixture("2401.22222v1", stale))
		default:
			fmt.Fprint(w, emptyFeedFixture)
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	papers, err := c.Discover(context.Background(), []string{"gaussian splatting"}, 7*24*time.Hour, 10)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(papers))
	}
	p := papers[0]
	if p.ID != "2501.11111v1" {
		t.Errorf("ID = %q", p.ID)
	}
	if !reflect.DeepEqual(p.Keywords, []string{"gaussian splatting"}) {
		t.Errorf("Keywords = %v", p.Keywords)
	}
	if len(p.CodeLinks) != 1 || p.CodeLinks[0] != "https://github.com/example/repo" {
		t.Errorf("CodeLinks = %v", p.CodeLinks)
	}
	if len(p.ProjectPages) != 1 || p.ProjectPages[0] != "https://example.com/project" {
		t.Errorf("ProjectPages = %v", p.ProjectPages)
	}
	if calls != 1 {
		t.Errorf("server hit %d times, want 1", calls)
	}
}

func TestDiscoverCutoff(t *testing.T) {
	stale := time.Now().UTC().Add(-90 * 24 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, discoverFixture("2401.22222v1", stale))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	papers, err := c.Discover(context.Background(), []string{"old stuff"}, 7*24*time.Hour, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers outside the lookback window, want 0", len(papers))
	}
}

func TestExtractAbstractLinks(t *testing.T) {
	tests := []struct {
		name      string
		abstract  string
		wantCode  []string
		wantPages []string
	}{
		{
			name:     "bare github path",
			abstract: "Our code is at github.com/foo/bar.",
			wantCode: []string{"https://github.com/foo/bar"},
		},
		{
			name:     "code marker with URL",
			abstract: "Code: https://example.com/code.",
			wantCode: []string{"https://example.com/code"},
		},
		{
			name:      "project page marker",
			abstract:  "Project page: https://example.com/splat.",
			wantPages: []string{"https://example.com/splat"},
		},
		{
			name:     "duplicate links collapsed",
			abstract: "See github.com/foo/bar and also github.com/foo/bar.",
			wantCode: []string{"https://github.com/foo/bar"},
		},
		{
			name:     "no links",
			abstract: "Nothing to see here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, pages := extractAbstractLinks(tt.abstract)
			if !reflect.DeepEqual(code, tt.wantCode) {
				t.Errorf("code = %v, want %v", code, tt.wantCode)
			}
			if !reflect.DeepEqual(pages, tt.wantPages) {
				t.Errorf("pages = %v, want %v", pages, tt.wantPages)
			}
		})
	}
}
