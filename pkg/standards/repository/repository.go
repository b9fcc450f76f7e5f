package repository

import (
	"context"
	"errors"
	"fmt"

	"avdesign-hq/meridian/pkg/standards"
)

var (
	// ErrNodeNotFound is returned when a node id resolves to nothing.
	ErrNodeNotFound = errors.New("node not found")

	// ErrStandardNotFound is returned when a standard id resolves to
	// nothing.
	ErrStandardNotFound = errors.New("standard not found")

	// ErrNodeInUse is returned when deleting a node that still has
	// children or attached standards.
	ErrNodeInUse = errors.New("node has children or attached standards")
)

// NotFoundError wraps a sentinel with the id that missed.
type NotFoundError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.ID)
}

// Unwrap supports errors.Is against the sentinels.
func (e *NotFoundError) Unwrap() error { return e.Err }

// Repository is the storage interface for the standards hierarchy.
// Writes validate structurally and reject parent links that would form
// a cycle, so readers can assume an acyclic forest.
type Repository interface {
	// GetNode returns the node with the given id.
	GetNode(ctx context.Context, id string) (*standards.StandardNode, error)

	// ListNodes returns every node, ordered by id.
	ListNodes(ctx context.Context) ([]*standards.StandardNode, error)

	// PutNode creates or replaces a node.
	PutNode(ctx context.Context, node *standards.StandardNode) error

	// DeleteNode removes a node. Nodes with children or attached
	// standards are refused with ErrNodeInUse.
	DeleteNode(ctx context.Context, id string) error

	// GetStandard returns the standard with the given id.
	GetStandard(ctx context.Context, id string) (*standards.Standard, error)

	// ListStandards returns every standard, ordered by id.
	ListStandards(ctx context.Context) ([]*standards.Standard, error)

	// PutStandard creates or replaces a standard.
	PutStandard(ctx context.Context, std *standards.Standard) error

	// DeleteStandard removes a standard.
	DeleteStandard(ctx context.Context, id string) error

	// GetApplicableStandards returns the standards reachable from the
	// forest roots along nodes whose dimension bindings the given
	// dimensions satisfy, ordered by standard id.
	GetApplicableStandards(ctx context.Context, dims standards.Dimensions) ([]*standards.Standard, error)

	// Close releases underlying resources.
	Close() error
}
