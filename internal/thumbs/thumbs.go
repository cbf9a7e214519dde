// Package thumbs manages thumbnail artifacts for catalog records. Image
// generation itself is an external collaborator; this package only derives
// paths, invokes the configured tool, and cleans up on delete. Generation
// is best-effort: a failure never blocks or rolls back a catalog mutation.
package thumbs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mrnerf/paperlist/internal/catalog"
)

// Generator produces thumbnail images for records.
type Generator interface {
	// Generate creates the thumbnail for id from its PDF URL.
	Generate(ctx context.Context, pdfURL, id string) error
}

// Path returns the thumbnail file path for a record id, relative to the
// repository root.
func Path(id string) string {
	return catalog.ThumbnailPath(id)
}

// Remove deletes the thumbnail artifact for a record id. A missing file is
// not an error; deletes must succeed whether or not a thumbnail was ever
// generated.
func Remove(repoRoot, id string) error {
	err := os.Remove(filepath.Join(repoRoot, Path(id)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing thumbnail for %s: %w", id, err)
	}
	return nil
}

// CommandGenerator shells out to an external tool with the PDF URL and the
// output path as arguments.
type CommandGenerator struct {
	RepoRoot string
	Tool     string // e.g. a script wrapping pdftoppm/ImageMagick
}

// Generate runs the tool. The output directory is created first so the
// tool can write directly to the deterministic path.
func (g *CommandGenerator) Generate(ctx context.Context, pdfURL, id string) error {
	if g.Tool == "" {
		return nil // no tool configured; thumbnails stay absent
	}

	out := filepath.Join(g.RepoRoot, Path(id))
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating thumbnail directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, g.Tool, pdfURL, out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("thumbnail tool: %v: %s", err, output)
	}
	return nil
}
