package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrnerf/paperlist/internal/catalog"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func indexRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID:              "kerbl20233d",
			Title:           "3D Gaussian Splatting",
			Authors:         "Bernhard Kerbl",
			Year:            2023,
			Abstract:        "Radiance fields.",
			Paper:           "https://arxiv.org/abs/2308.04079",
			Tags:            []string{"Rendering", "Year 2023"},
			Thumbnail:       "assets/thumbnails/kerbl20233d.jpg",
			PublicationDate: "2023-08-08T06:37:38Z",
			DateSource:      "arxiv",
		},
		{
			ID:      "chen2024gaussianeditor",
			Title:   "GaussianEditor",
			Authors: "Yiwen Chen",
			Year:    2024,
			Tags:    []string{"Editing", "Year 2024"},
		},
	}
}

func TestRebuildAndCount(t *testing.T) {
	db := openTestDB(t)
	if err := db.Rebuild(indexRecords(), "hash1"); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	// A second rebuild replaces, not appends.
	if err := db.Rebuild(indexRecords()[:1], "hash2"); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}
	n, err = db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count after rebuild = %d, want 1", n)
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)
	if err := db.Rebuild(indexRecords(), "hash1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		query   string
		tag     string
		wantIDs []string
	}{
		{"title", "splatting", "", []string{"kerbl20233d"}},
		{"author case insensitive", "KERBL", "", []string{"kerbl20233d"}},
		{"tag via query", "editing", "", []string{"chen2024gaussianeditor"}},
		{"tag filter", "", "Rendering", []string{"kerbl20233d"}},
		{"all in insertion order", "", "", []string{"kerbl20233d", "chen2024gaussianeditor"}},
		{"no hits", "nerf", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Search(tt.query, tt.tag)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			var ids []string
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("Search(%q, %q) = %v, want %v", tt.query, tt.tag, ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("Search(%q, %q) = %v, want %v", tt.query, tt.tag, ids, tt.wantIDs)
				}
			}
		})
	}
}

func TestSearchRoundTripsRecord(t *testing.T) {
	db := openTestDB(t)
	recs := indexRecords()
	if err := db.Rebuild(recs, "hash1"); err != nil {
		t.Fatal(err)
	}

	got, err := db.Search("splatting", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	if !got[0].Equal(recs[0]) {
		t.Errorf("round-tripped record = %+v, want %+v", got[0], recs[0])
	}
}

func TestInSync(t *testing.T) {
	db := openTestDB(t)

	ok, err := db.InSync("anything")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("empty index reported in sync")
	}

	if err := db.Rebuild(indexRecords(), "hash1"); err != nil {
		t.Fatal(err)
	}
	if ok, _ = db.InSync("hash1"); !ok {
		t.Error("matching hash reported stale")
	}
	if ok, _ = db.InSync("hash2"); ok {
		t.Error("mismatched hash reported in sync")
	}
}

func TestComputeCatalogHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.yaml")

	missing, err := ComputeCatalogHash(path)
	if err != nil {
		t.Fatalf("hash of missing file: %v", err)
	}

	if err := os.WriteFile(path, []byte("- id: a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	h1, err := ComputeCatalogHash(path)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := ComputeCatalogHash(path)
	if err != nil {
		t.Fatal(err)
	}

	if h1 != h2 {
		t.Error("hash not stable for identical contents")
	}
	if h1 == missing {
		t.Error("hash did not change when content appeared")
	}
}
