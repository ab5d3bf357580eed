package yaml

import (
	"github.com/fwojciec/diaclass"
	"gopkg.in/yaml.v3"
)

// parseNav converts the nav value into a tagged tree. Lists hold entries in
// order; an entry is a bare path or a one-or-more key mapping of label to
// path, list or mapping. Null values are dropped.
func parseNav(n *yaml.Node) ([]*diaclass.NavNode, error) {
	n = deref(n)
	if n == nil || isNull(n) {
		return nil, nil
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return parseNavList(n)
	case yaml.MappingNode:
		return parseNavMapping(n)
	case yaml.ScalarNode:
		return []*diaclass.NavNode{{Path: n.Value}}, nil
	}
	return nil, invalidf(n, "unsupported nav entry")
}

func parseNavList(n *yaml.Node) ([]*diaclass.NavNode, error) {
	nodes := []*diaclass.NavNode{}
	for _, item := range n.Content {
		item = deref(item)
		if item == nil || isNull(item) {
			continue
		}
		switch item.Kind {
		case yaml.ScalarNode:
			nodes = append(nodes, &diaclass.NavNode{Path: item.Value})
		case yaml.MappingNode:
			children, err := parseNavMapping(item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, children...)
		case yaml.SequenceNode:
			children, err := parseNavList(item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &diaclass.NavNode{Children: children})
		}
	}
	return nodes, nil
}

func parseNavMapping(n *yaml.Node) ([]*diaclass.NavNode, error) {
	nodes := []*diaclass.NavNode{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		label, ok := scalar(n.Content[i])
		if !ok {
			return nil, invalidf(n.Content[i], "nav label must be a string")
		}
		value := deref(n.Content[i+1])
		if value == nil || isNull(value) {
			continue
		}
		switch value.Kind {
		case yaml.ScalarNode:
			nodes = append(nodes, &diaclass.NavNode{Label: label, Path: value.Value})
		case yaml.SequenceNode:
			children, err := parseNavList(value)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &diaclass.NavNode{Label: label, Children: children})
		case yaml.MappingNode:
			children, err := parseNavMapping(value)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &diaclass.NavNode{Label: label, Children: children})
		}
	}
	return nodes, nil
}
