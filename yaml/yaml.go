// Package yaml loads MkDocs site configurations using gopkg.in/yaml.v3.
//
// The config is walked at the node level instead of being decoded into
// structs so that application-specific tags such as !ENV or
// !!python/name:... are tolerated and treated as the value they tag.
package yaml

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"

	"github.com/fwojciec/diaclass"
	"gopkg.in/yaml.v3"
)

// PluginName is the plugin whose configuration lists external repositories.
const PluginName = "multirepo"

// WarnFunc is called for config entries that are skipped rather than rejected.
type WarnFunc func(format string, args ...any)

// Option configures loading.
type Option func(*loader)

// WithWarnFunc sets the function called for skipped entries.
func WithWarnFunc(fn WarnFunc) Option {
	return func(l *loader) {
		l.warn = fn
	}
}

type loader struct {
	warn WarnFunc
}

func (l *loader) warnf(format string, args ...any) {
	if l.warn != nil {
		l.warn(format, args...)
	}
}

// Load reads and parses the site config at path.
// Returns ENOTFOUND if the file does not exist and EINVALID if it is malformed.
func Load(path string, opts ...Option) (*diaclass.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, diaclass.Errorf(diaclass.ENOTFOUND, "could not find %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}
	return Parse(path, data, opts...)
}

// Parse parses site config data. Path is recorded on the returned config and
// used to resolve relative locations.
func Parse(path string, data []byte, opts ...Option) (*diaclass.SiteConfig, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, diaclass.Errorf(diaclass.EINVALID, "invalid site config %s: %v", path, err)
	}

	cfg := &diaclass.SiteConfig{
		Path:    path,
		DocsDir: diaclass.DefaultDocsDir,
	}

	root := deref(&doc)
	if root == nil || root.Kind == 0 || isNull(root) {
		return validated(cfg)
	}
	if root.Kind != yaml.MappingNode {
		return nil, invalidf(root, "site config must be a mapping")
	}

	if n := lookup(root, "docs_dir"); n != nil && !isNull(n) {
		s, ok := scalar(n)
		if !ok {
			return nil, invalidf(n, "docs_dir must be a string")
		}
		if s != "" {
			cfg.DocsDir = s
		}
	}

	if n := lookup(root, "nav"); n != nil {
		nav, err := parseNav(n)
		if err != nil {
			return nil, err
		}
		cfg.Nav = nav
	}

	repos, err := l.parseRepositories(lookup(root, "plugins"))
	if err != nil {
		return nil, err
	}
	cfg.Repositories = repos

	return validated(cfg)
}

func validated(cfg *diaclass.SiteConfig) (*diaclass.SiteConfig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// deref unwraps document and alias nodes.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// lookup returns the value for key in mapping node n, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k, ok := scalar(n.Content[i]); ok && k == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// scalar returns the text of a non-null scalar node.
func scalar(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return "", false
	}
	return n.Value, true
}

func invalidf(n *yaml.Node, format string, args ...any) error {
	return diaclass.Errorf(diaclass.EINVALID, "line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
