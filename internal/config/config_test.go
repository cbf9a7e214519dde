package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepository(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, CatalogFile), []byte("[]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository: %v", err)
	}
	// TempDir may sit behind a symlink; compare resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("FindRepository = %q, want %q", got, root)
	}
}

func TestFindRepositoryNotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository succeeded outside a repository")
	}
}

func TestIsRepository(t *testing.T) {
	root := t.TempDir()
	if IsRepository(root) {
		t.Error("empty dir reported as repository")
	}

	if err := os.Mkdir(filepath.Join(root, PaperlistDir), 0755); err != nil {
		t.Fatal(err)
	}
	if !IsRepository(root) {
		t.Error(".paperlist dir not recognized")
	}
}

func TestLoadMissingConfig(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageTitle != "" || cfg.OutputFile != "" {
		t.Errorf("missing config should yield zero values, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	want := &Config{
		PageTitle:  "My Papers",
		OutputFile: "docs/index.html",
	}
	if err := Save(root, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PageTitle != want.PageTitle || got.OutputFile != want.OutputFile {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	root := t.TempDir()
	if err := Save(root, &Config{UserAgent: "file-agent"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PAPERLIST_USER_AGENT", "env-agent")
	t.Setenv("PAPERLIST_THUMBNAIL_TOOL", "env-tool")

	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UserAgent != "env-agent" {
		t.Errorf("UserAgent = %q, env should override file", cfg.UserAgent)
	}
	if cfg.ThumbnailTool != "env-tool" {
		t.Errorf("ThumbnailTool = %q", cfg.ThumbnailTool)
	}
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"),
		[]byte("PAPERLIST_USER_AGENT=dotenv-agent\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PAPERLIST_USER_AGENT", "")
	os.Unsetenv("PAPERLIST_USER_AGENT")

	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UserAgent != "dotenv-agent" {
		t.Errorf("UserAgent = %q, want value from .env", cfg.UserAgent)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default", Config{}, filepath.Join("/repo", DefaultOutputFile)},
		{"relative", Config{OutputFile: "docs/index.html"}, filepath.Join("/repo", "docs", "index.html")},
		{"absolute", Config{OutputFile: "/srv/www/index.html"}, "/srv/www/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.OutputPath("/repo"); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
