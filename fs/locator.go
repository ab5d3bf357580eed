// Package fs locates site documents on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/diaclass"
)

// Ensure Locator implements diaclass.Locator at compile time.
var _ diaclass.Locator = (*Locator)(nil)

// Locator finds document files under an ordered list of candidate roots.
// Locally authored docs take precedence over files pulled from external
// repositories, and the site's docs root over its project root.
type Locator struct {
	roots []string
}

// NewLocator creates a Locator for a site config. Candidate roots are, in
// order: <config dir>/<docs dir>, <config dir>, repoDir.
func NewLocator(cfg *diaclass.SiteConfig, repoDir string) *Locator {
	base := cfg.BaseDir()
	docsDir := cfg.DocsDir
	if docsDir == "" {
		docsDir = diaclass.DefaultDocsDir
	}
	return &Locator{roots: []string{filepath.Join(base, docsDir), base, repoDir}}
}

// Locate returns the content of the first candidate file that exists.
func (l *Locator) Locate(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ref == "" {
		return "", diaclass.Errorf(diaclass.EINVALID, "document reference required")
	}

	for _, root := range l.roots {
		path := filepath.Join(root, filepath.FromSlash(ref))
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(b), nil
	}

	return "", diaclass.Errorf(diaclass.ENOTFOUND, "file %q not found in expected locations", ref)
}
