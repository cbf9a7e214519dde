package pdfid

import "testing"

func TestFindID(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		firstPage bool
		want      string
	}{
		{
			name:      "margin stamp",
			text:      "arXiv:2412.21206v2 [cs.GR] 30 Dec 2024",
			firstPage: true,
			want:      "2412.21206v2",
		},
		{
			name:      "stamp without version",
			text:      "some header arXiv:2308.04079 footer",
			firstPage: true,
			want:      "2308.04079",
		},
		{
			name:      "stamp found on later page",
			text:      "arXiv:2308.04079v1",
			firstPage: false,
			want:      "2308.04079v1",
		},
		{
			name:      "bare id fallback on first page",
			text:      "mangled stamp 2412.21206 rest of title",
			firstPage: true,
			want:      "2412.21206",
		},
		{
			name:      "bare id ignored past first page",
			text:      "as shown in [12] 2412.21206 et al.",
			firstPage: false,
			want:      "",
		},
		{
			name:      "no id",
			text:      "a perfectly ordinary page of text",
			firstPage: true,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findID(tt.text, tt.firstPage); got != tt.want {
				t.Errorf("findID(%q, %v) = %q, want %q", tt.text, tt.firstPage, got, tt.want)
			}
		})
	}
}

func TestExtractArxivIDMissingFile(t *testing.T) {
	if _, err := ExtractArxivID("/nonexistent/paper.pdf"); err == nil {
		t.Error("ExtractArxivID succeeded on a missing file")
	}
}
