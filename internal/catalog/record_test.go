package catalog

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYearUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"integer", "year: 2024", 2024},
		{"quoted string", `year: "2024"`, 2024},
		{"float", "year: 2024.0", 2024},
		{"string with noise", `year: "2024 (to appear)"`, 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Year Year `yaml:"year"`
			}
			if err := yaml.Unmarshal([]byte(tt.input), &doc); err != nil {
				t.Fatalf("Unmarshal(%q) error: %v", tt.input, err)
			}
			if doc.Year.Int() != tt.want {
				t.Errorf("Unmarshal(%q) year = %d, want %d", tt.input, doc.Year.Int(), tt.want)
			}
		})
	}
}

func TestYearUnmarshalYAMLInvalid(t *testing.T) {
	var doc struct {
		Year Year `yaml:"year"`
	}
	if err := yaml.Unmarshal([]byte(`year: "no digits here"`), &doc); err == nil {
		t.Error("Unmarshal accepted a digit-free year string")
	}
}

func TestYearMarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Year Year `yaml:"year"`
	}{Year: 2023})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "year: 2023\n" {
		t.Errorf("Marshal year = %q, want plain integer", out)
	}
}

func TestFirstAuthorSurname(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		want    string
	}{
		{"single author", "Bernhard Kerbl", "kerbl"},
		{"multiple authors", "Bernhard Kerbl, Georgios Kopanas", "kerbl"},
		{"middle initial", "Timothy C Yu, Jesse Bloom", "yu"},
		{"single name", "Banksy", "banksy"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Authors: tt.authors}
			if got := r.FirstAuthorSurname(); got != tt.want {
				t.Errorf("FirstAuthorSurname() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayTags(t *testing.T) {
	r := Record{Tags: []string{"Rendering", "Year 2024", "Code"}}
	want := []string{"Rendering", "Code"}
	if got := r.DisplayTags(); !reflect.DeepEqual(got, want) {
		t.Errorf("DisplayTags() = %v, want %v", got, want)
	}
}

func TestRecordEqual(t *testing.T) {
	base := Record{
		ID:      "kerbl20233d",
		Title:   "3D Gaussian Splatting",
		Authors: "Bernhard Kerbl",
		Year:    2023,
		Tags:    []string{"Rendering", "Year 2023"},
	}

	same := base
	same.Tags = []string{"Rendering", "Year 2023"}
	if !base.Equal(same) {
		t.Error("identical records reported unequal")
	}

	edited := base
	edited.Title = "3D Gaussian Splatting v2"
	if base.Equal(edited) {
		t.Error("title change not detected")
	}

	retagged := base
	retagged.Tags = []string{"Year 2023", "Rendering"}
	if base.Equal(retagged) {
		t.Error("tag order change not detected")
	}

	relinked := base
	relinked.Code = "https://github.com/graphdeco-inria/gaussian-splatting"
	if base.Equal(relinked) {
		t.Error("optional link change not detected")
	}

	redated := base
	redated.PublicationDate = "2023-08-08T06:37:38Z"
	redated.DateSource = DateSourceArxiv
	if base.Equal(redated) {
		t.Error("publication date change not detected")
	}
}
