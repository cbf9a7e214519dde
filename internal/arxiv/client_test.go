package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2308.04079v1</id>
    <title>3D Gaussian Splatting
 for Real-Time Radiance Field Rendering</title>
    <summary>Radiance Field methods have recently revolutionized novel-view
 synthesis. Code: https://github.com/graphdeco-inria/gaussian-splatting.</summary>
    <published>2023-08-08T06:37:38Z</published>
    <author><name>Bernhard Kerbl</name></author>
    <author><name>Georgios Kopanas</name></author>
    <category term="cs.GR"/>
    <category term="cs.CV"/>
    <link href="http://arxiv.org/pdf/2308.04079v1" title="pdf"/>
  </entry>
</feed>`

const emptyFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
</feed>`

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_list"); got != "2308.04079" {
			t.Errorf("id_list = %q, want %q", got, "2308.04079")
		}
		fmt.Fprint(w, feedFixture)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	m, err := c.Lookup(context.Background(), "2308.04079")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if m.ID != "2308.04079v1" {
		t.Errorf("ID = %q, want %q", m.ID, "2308.04079v1")
	}
	if m.Title != "3D Gaussian Splatting for Real-Time Radiance Field Rendering" {
		t.Errorf("Title = %q, newlines not collapsed", m.Title)
	}
	if len(m.Authors) != 2 || m.Authors[0] != "Bernhard Kerbl" {
		t.Errorf("Authors = %v", m.Authors)
	}
	if m.Published.Year() != 2023 {
		t.Errorf("Published = %v", m.Published)
	}
	if m.Category != "cs.GR" {
		t.Errorf("Category = %q, want primary term", m.Category)
	}
	if m.PDFURL != "https://arxiv.org/pdf/2308.04079v1.pdf" {
		t.Errorf("PDFURL = %q", m.PDFURL)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, emptyFeedFixture)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "9999.99999")
	if !errors.Is(err, ErrPaperNotFound) {
		t.Errorf("Lookup error = %v, want ErrPaperNotFound", err)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if _, err := c.Lookup(context.Background(), "2308.04079"); err == nil {
		t.Error("Lookup succeeded against a failing server")
	}
}

func TestMetadataRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedFixture)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	m, err := c.Lookup(context.Background(), "2308.04079")
	if err != nil {
		t.Fatal(err)
	}

	raw := m.Raw()
	if raw.Year != 2023 {
		t.Errorf("raw.Year = %v, want 2023", raw.Year)
	}
	if raw.PublicationDate != "2023-08-08T06:37:38Z" {
		t.Errorf("raw.PublicationDate = %q", raw.PublicationDate)
	}
	if raw.DateSource != "arxiv" {
		t.Errorf("raw.DateSource = %q, want arxiv", raw.DateSource)
	}
	if raw.Paper != m.PDFURL {
		t.Errorf("raw.Paper = %q, want %q", raw.Paper, m.PDFURL)
	}
}
