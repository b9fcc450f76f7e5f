package validator

import (
	"strings"
	"testing"

	"avdesign-hq/meridian/pkg/standards"
)

func folder(id, parent string) *standards.StandardNode {
	return &standards.StandardNode{
		ID: id, ParentID: parent, Kind: standards.NodeFolder, Name: "node " + id,
	}
}

func TestValidateForest(t *testing.T) {
	sound := []*standards.StandardNode{
		folder("root", ""),
		folder("child-a", "root"),
		folder("child-b", "root"),
		folder("leaf", "child-a"),
	}
	if err := ValidateForest(sound); err != nil {
		t.Fatalf("sound forest rejected: %v", err)
	}

	tests := []struct {
		name  string
		nodes []*standards.StandardNode
		want  string
	}{
		{
			"duplicate id",
			[]*standards.StandardNode{folder("root", ""), folder("root", "")},
			"duplicate node id",
		},
		{
			"dangling parent",
			[]*standards.StandardNode{folder("orphan", "missing")},
			"does not exist",
		},
		{
			"two node cycle",
			[]*standards.StandardNode{folder("a", "b"), folder("b", "a")},
			"cycle",
		},
		{
			"three node cycle",
			[]*standards.StandardNode{folder("a", "c"), folder("b", "a"), folder("c", "b")},
			"cycle",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForest(tt.nodes)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %v does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCheckAcyclic(t *testing.T) {
	existing := []*standards.StandardNode{
		folder("root", ""),
		folder("mid", "root"),
		folder("leaf", "mid"),
	}

	if err := CheckAcyclic(existing, folder("new", "leaf")); err != nil {
		t.Errorf("extending a chain is fine: %v", err)
	}
	if err := CheckAcyclic(existing, folder("new", "")); err != nil {
		t.Errorf("adding a root is fine: %v", err)
	}

	// Re-parenting root under leaf closes root -> mid -> leaf -> root.
	if err := CheckAcyclic(existing, folder("root", "leaf")); err == nil {
		t.Error("re-parenting an ancestor under its descendant must fail")
	}
	if err := CheckAcyclic(existing, folder("x", "x")); err == nil {
		t.Error("self parenting must fail")
	}
}
