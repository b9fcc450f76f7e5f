package repository

import (
	"sort"

	"avdesign-hq/meridian/pkg/standards"
)

// ResolveApplicable walks the node forest from its roots, descending
// only through nodes whose dimension bindings the given dimensions
// satisfy, and returns the standards attached to every visited node,
// ordered by standard id. Both repository implementations share this
// walk so their answers cannot drift apart.
//
// The walk tolerates dangling parent links (the subtree is simply
// unreachable) and assumes acyclicity, which writes enforce.
func ResolveApplicable(nodes []*standards.StandardNode, stds []*standards.Standard, dims standards.Dimensions) []*standards.Standard {
	children := make(map[string][]*standards.StandardNode)
	var roots []*standards.StandardNode
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if node.IsRoot() {
			roots = append(roots, node)
			continue
		}
		children[node.ParentID] = append(children[node.ParentID], node)
	}
	sortNodes(roots)
	for _, kids := range children {
		sortNodes(kids)
	}

	visited := make(map[string]bool)
	var walk func(node *standards.StandardNode)
	walk = func(node *standards.StandardNode) {
		if visited[node.ID] || !node.MatchesBinding(dims) {
			return
		}
		visited[node.ID] = true
		for _, child := range children[node.ID] {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}

	var out []*standards.Standard
	for _, std := range stds {
		if std != nil && visited[std.NodeID] {
			out = append(out, std)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortNodes(nodes []*standards.StandardNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
