package render

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mrnerf/paperlist/internal/catalog"
)

func testRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID:        "kerbl20233d",
			Title:     "3D Gaussian Splatting",
			Authors:   "Bernhard Kerbl, Georgios Kopanas",
			Year:      2023,
			Abstract:  "Radiance field rendering.",
			Paper:     "https://arxiv.org/abs/2308.04079",
			Code:      "https://github.com/graphdeco-inria/gaussian-splatting",
			Tags:      []string{"Rendering", "Year 2023"},
			Thumbnail: "assets/thumbnails/kerbl20233d.jpg",
		},
		{
			ID:        "chen2024gaussianeditor",
			Title:     "GaussianEditor",
			Authors:   "Yiwen Chen",
			Year:      2024,
			Paper:     "https://arxiv.org/abs/2311.14521",
			Tags:      []string{"Editing", "Year 2024"},
			Thumbnail: "assets/thumbnails/chen2024gaussianeditor.jpg",
		},
	}
}

func TestBuildPage(t *testing.T) {
	page, err := BuildPage("My Papers", testRecords())
	if err != nil {
		t.Fatalf("BuildPage: %v", err)
	}

	if page.Title != "My Papers" {
		t.Errorf("Title = %q", page.Title)
	}
	if !reflect.DeepEqual(page.Years, []int{2024, 2023}) {
		t.Errorf("Years = %v, want descending", page.Years)
	}
	if !reflect.DeepEqual(page.TagFilters, []string{"Editing", "Rendering"}) {
		t.Errorf("TagFilters = %v, want sorted without year tags", page.TagFilters)
	}
	if len(page.Cards) != 2 {
		t.Fatalf("got %d cards", len(page.Cards))
	}

	// Catalog order is preserved.
	if page.Cards[0].ID != "kerbl20233d" || page.Cards[1].ID != "chen2024gaussianeditor" {
		t.Errorf("card order = %q, %q", page.Cards[0].ID, page.Cards[1].ID)
	}

	first := page.Cards[0]
	var labels []string
	for _, l := range first.Links {
		labels = append(labels, l.Label)
	}
	// Absent link categories are omitted, present ones keep field order.
	if !reflect.DeepEqual(labels, []string{"Paper", "Code"}) {
		t.Errorf("link labels = %v", labels)
	}
	if first.TagsJSON != `["Rendering","Year 2023"]` {
		t.Errorf("TagsJSON = %q", first.TagsJSON)
	}
	if !reflect.DeepEqual(first.Tags, []string{"Rendering"}) {
		t.Errorf("card Tags = %v, year tag should be excluded", first.Tags)
	}
}

func TestBuildPageDefaultTitle(t *testing.T) {
	page, err := BuildPage("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Title != DefaultPageTitle {
		t.Errorf("Title = %q, want default", page.Title)
	}
}

func TestWriteHTMLDeterministic(t *testing.T) {
	page, err := BuildPage("My Papers", testRecords())
	if err != nil {
		t.Fatal(err)
	}

	var a, b bytes.Buffer
	if err := WriteHTML(&a, page); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if err := WriteHTML(&b, page); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two renders of the same page differ")
	}
}

func TestWriteHTMLContent(t *testing.T) {
	page, err := BuildPage("My Papers", testRecords())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, page); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{
		"<title>My Papers</title>",
		"3D Gaussian Splatting",
		`href="https://arxiv.org/abs/2308.04079"`,
		`data-year="2023"`,
		`<option value="2024">2024</option>`,
		`data-tag="Rendering"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// The second record has no abstract, so exactly one toggle renders.
	if got := strings.Count(html, "abstract-toggle\">"); got != 1 {
		t.Errorf("abstract toggle count = %d, want 1", got)
	}
}

func TestWriteHTMLEscapes(t *testing.T) {
	recs := []catalog.Record{{
		ID:      "evil2024x",
		Title:   `<script>alert("x")</script>`,
		Authors: "A B",
		Year:    2024,
		Tags:    []string{"Rendering", "Year 2024"},
	}}
	page, err := BuildPage("T", recs)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteHTML(&buf, page); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `<script>alert`) {
		t.Error("title not escaped")
	}
}
