package standards

// NodeKind distinguishes folders from standard leaves in the hierarchy.
type NodeKind string

const (
	NodeFolder   NodeKind = "folder"
	NodeStandard NodeKind = "standard"
)

// IsValid returns true if k is a known node kind.
func (k NodeKind) IsValid() bool {
	return k == NodeFolder || k == NodeStandard
}

// StandardNode is a node of the standards hierarchy. ParentID links
// nodes into a forest; an empty ParentID marks a root. The forest must
// stay acyclic; repositories reject writes that would create a cycle.
//
// A node may bind a dimension to a value (for example room_type =
// "conference"). During applicability resolution a bound node and its
// subtree are visited only when the design's dimension value equals the
// binding; an unbound node always matches.
type StandardNode struct {
	ID       string   `json:"id" yaml:"id"`
	ParentID string   `json:"parent_id,omitempty" yaml:"parent,omitempty"`
	Kind     NodeKind `json:"kind" yaml:"kind"`
	Name     string   `json:"name" yaml:"name"`

	// Dimension and Value form the optional dimension binding.
	Dimension RuleDimension `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Value     string        `json:"value,omitempty" yaml:"value,omitempty"`
}

// IsRoot returns true for nodes without a parent.
func (n *StandardNode) IsRoot() bool { return n.ParentID == "" }

// HasBinding returns true if the node binds a dimension value.
func (n *StandardNode) HasBinding() bool { return n.Dimension != "" }

// MatchesBinding reports whether the node's binding is satisfied by the
// given dimensions. Unbound nodes always match; a binding over an unset
// dimension fails closed.
func (n *StandardNode) MatchesBinding(dims Dimensions) bool {
	if !n.HasBinding() {
		return true
	}
	v, ok := dims.Value(n.Dimension)
	if !ok {
		return false
	}
	return v == n.Value
}
