package diaclass

import "strings"

// NavNode is one entry of a site's navigation tree. A leaf carries a Path; a
// branch carries Children in declared order. Label is empty for entries that
// were declared without one (a bare path in a list).
type NavNode struct {
	Label    string     `json:"label,omitempty"`
	Path     string     `json:"path,omitempty"`
	Children []*NavNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node references a single path.
func (n *NavNode) IsLeaf() bool {
	return n.Children == nil && n.Path != ""
}

// ResolveNavigation flattens a navigation tree into document references,
// depth-first and left to right. External links are dropped and any
// "#fragment" suffix is removed. The order is the declared navigation order.
func ResolveNavigation(nav []*NavNode) []string {
	var refs []string
	for _, n := range nav {
		refs = appendRefs(refs, n)
	}
	return refs
}

func appendRefs(refs []string, n *NavNode) []string {
	if n == nil {
		return refs
	}
	if !n.IsLeaf() {
		for _, child := range n.Children {
			refs = appendRefs(refs, child)
		}
		return refs
	}
	if IsExternalLink(n.Path) {
		return refs
	}
	if ref := StripFragment(n.Path); ref != "" {
		refs = append(refs, ref)
	}
	return refs
}

// IsExternalLink reports whether path starts with an http or https scheme.
func IsExternalLink(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// StripFragment removes a trailing "#fragment" from path.
func StripFragment(path string) string {
	p, _, _ := strings.Cut(path, "#")
	return p
}
