package diaclass

import (
	"path/filepath"
	"slices"
	"strings"
)

// DefaultDocsDir is the docs root used when the site config does not set one.
const DefaultDocsDir = "docs"

// SiteConfig represents the parts of a site configuration the classifier needs.
// It is loaded once per run and never mutated.
type SiteConfig struct {
	// Path is the location of the config file the site was loaded from.
	Path string `json:"path"`

	// DocsDir is the site's documentation root, relative to the config file.
	DocsDir string `json:"docsDir"`

	// Nav is the navigation tree in declared order.
	Nav []*NavNode `json:"nav"`

	// Repositories lists the external repositories the site pulls content from.
	Repositories []*Repository `json:"repositories"`
}

// BaseDir returns the directory containing the config file.
func (c *SiteConfig) BaseDir() string {
	return filepath.Dir(c.Path)
}

// Validate returns an error if the config contains invalid fields.
func (c *SiteConfig) Validate() error {
	if c.Path == "" {
		return Errorf(EINVALID, "site config path required")
	}
	for _, r := range c.Repositories {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Repository identifies one external content source.
type Repository struct {
	Name      string `json:"name"`
	ImportURL string `json:"importUrl"`
}

// Validate returns an error if the repository contains invalid fields.
func (r *Repository) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "repository name required")
	}
	if r.ImportURL == "" {
		return Errorf(EINVALID, "repository %q import URL required", r.Name)
	}
	return nil
}

// CloneURL returns the import URL without its query string. Query parameters
// are import hints for the site generator, not part of the clone target.
func (r *Repository) CloneURL() string {
	u, _, _ := strings.Cut(r.ImportURL, "?")
	return u
}

// DedupeRepositories collapses repositories sharing a name. The last
// declaration wins and takes the position of the first one. The names that
// were collapsed are returned in the order they were first seen.
func DedupeRepositories(repos []*Repository) (out []*Repository, dups []string) {
	index := make(map[string]int, len(repos))
	for _, r := range repos {
		if i, ok := index[r.Name]; ok {
			if !slices.Contains(dups, r.Name) {
				dups = append(dups, r.Name)
			}
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out, dups
}
