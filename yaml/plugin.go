package yaml

import (
	"github.com/fwojciec/diaclass"
	"gopkg.in/yaml.v3"
)

// parseRepositories reads nav_repos from the multirepo plugin. Plugins may
// be declared as a list ("- multirepo: {...}") or as a mapping. Entries
// without a name or import_url are skipped.
func (l *loader) parseRepositories(plugins *yaml.Node) ([]*diaclass.Repository, error) {
	cfg := findPlugin(plugins, PluginName)
	if cfg == nil {
		return nil, nil
	}

	navRepos := lookup(cfg, "nav_repos")
	if navRepos == nil || isNull(navRepos) {
		return nil, nil
	}
	if navRepos.Kind != yaml.SequenceNode {
		return nil, invalidf(navRepos, "nav_repos must be a list")
	}

	var repos []*diaclass.Repository
	for _, item := range navRepos.Content {
		item = deref(item)
		if item == nil {
			continue
		}
		name, _ := scalar(lookup(item, "name"))
		importURL, _ := scalar(lookup(item, "import_url"))
		if name == "" || importURL == "" {
			l.warnf("skipping invalid repository entry at line %d", item.Line)
			continue
		}
		repos = append(repos, &diaclass.Repository{Name: name, ImportURL: importURL})
	}
	return repos, nil
}

// findPlugin returns the configuration node of the first plugin named name.
func findPlugin(plugins *yaml.Node, name string) *yaml.Node {
	plugins = deref(plugins)
	if plugins == nil {
		return nil
	}
	switch plugins.Kind {
	case yaml.MappingNode:
		return lookup(plugins, name)
	case yaml.SequenceNode:
		for _, item := range plugins.Content {
			if cfg := lookup(item, name); cfg != nil {
				return cfg
			}
		}
	}
	return nil
}
