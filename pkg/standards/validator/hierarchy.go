package validator

import (
	"fmt"

	"avdesign-hq/meridian/pkg/standards"
)

// ValidateForest checks the structural validity of a whole node forest:
// per-node field checks, unique ids, resolvable parents, and
// acyclicity of the parent links. Cycles are rejected at creation time
// so traversal never needs a termination policy for cyclic stores.
func ValidateForest(nodes []*standards.StandardNode) error {
	el := NewErrorList()

	byID := make(map[string]*standards.StandardNode, len(nodes))
	for _, node := range nodes {
		validateNodeInto(el, node)
		if node == nil || node.ID == "" {
			continue
		}
		if _, dup := byID[node.ID]; dup {
			el.Addf(fmt.Sprintf("node %q", node.ID), "duplicate node id")
			continue
		}
		byID[node.ID] = node
	}

	for _, node := range nodes {
		if node == nil || node.ID == "" || node.ParentID == "" {
			continue
		}
		if _, ok := byID[node.ParentID]; !ok {
			el.AddWithSuggestion(fmt.Sprintf("node %q", node.ID),
				fmt.Sprintf("parent %q does not exist", node.ParentID),
				"attach the node to an existing folder or make it a root")
		}
	}

	if cycle := findCycle(byID); len(cycle) > 0 {
		el.Addf(fmt.Sprintf("node %q", cycle[0]), "parent links form a cycle: %v", cycle)
	}

	return el.ToError()
}

// CheckAcyclic reports whether adding or updating candidate inside the
// existing forest would keep parent links acyclic. Repositories call
// this before accepting a write.
func CheckAcyclic(existing []*standards.StandardNode, candidate *standards.StandardNode) error {
	if candidate == nil || candidate.ID == "" {
		return nil
	}
	byID := make(map[string]*standards.StandardNode, len(existing)+1)
	for _, node := range existing {
		if node != nil && node.ID != "" {
			byID[node.ID] = node
		}
	}
	byID[candidate.ID] = candidate

	// Walk ancestry from the candidate; revisiting it means the write
	// closes a cycle.
	seen := map[string]bool{candidate.ID: true}
	current := candidate.ParentID
	for current != "" {
		if seen[current] {
			return &Error{
				Subject:    fmt.Sprintf("node %q", candidate.ID),
				Message:    fmt.Sprintf("parent %q would create a cycle", candidate.ParentID),
				Suggestion: "attach the node to a different parent",
			}
		}
		seen[current] = true
		parent, ok := byID[current]
		if !ok {
			break
		}
		current = parent.ParentID
	}
	return nil
}

// findCycle returns the ids on one parent-link cycle, or nil. It uses
// the visiting/visited two-set walk so each node is examined once.
func findCycle(byID map[string]*standards.StandardNode) []string {
	visited := make(map[string]bool, len(byID))

	for id := range byID {
		if visited[id] {
			continue
		}
		visiting := make(map[string]int)
		var path []string
		current := id
		for current != "" {
			if visited[current] {
				break
			}
			if at, ok := visiting[current]; ok {
				return path[at:]
			}
			visiting[current] = len(path)
			path = append(path, current)
			node, ok := byID[current]
			if !ok {
				break
			}
			current = node.ParentID
		}
		for _, p := range path {
			visited[p] = true
		}
	}
	return nil
}
