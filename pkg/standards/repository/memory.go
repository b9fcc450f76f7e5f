package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/validator"
)

// MemoryRepository is an in-memory Repository. It is safe for
// concurrent use and backs tests, linting, and directory-loaded
// deployments where the YAML files are the source of truth.
type MemoryRepository struct {
	mu    sync.RWMutex
	nodes map[string]*standards.StandardNode
	stds  map[string]*standards.Standard
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nodes: make(map[string]*standards.StandardNode),
		stds:  make(map[string]*standards.Standard),
	}
}

// GetNode returns the node with the given id.
func (r *MemoryRepository) GetNode(ctx context.Context, id string) (*standards.StandardNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.nodes[id]
	if !ok {
		return nil, &NotFoundError{ID: id, Err: ErrNodeNotFound}
	}
	return node, nil
}

// ListNodes returns every node, ordered by id.
func (r *MemoryRepository) ListNodes(ctx context.Context) ([]*standards.StandardNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodesLocked(), nil
}

func (r *MemoryRepository) nodesLocked() []*standards.StandardNode {
	out := make([]*standards.StandardNode, 0, len(r.nodes))
	for _, node := range r.nodes {
		out = append(out, node)
	}
	sortNodes(out)
	return out
}

// PutNode creates or replaces a node after validating it and checking
// that its parent link keeps the forest acyclic.
func (r *MemoryRepository) PutNode(ctx context.Context, node *standards.StandardNode) error {
	if err := validator.ValidateNode(node); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := validator.CheckAcyclic(r.nodesLocked(), node); err != nil {
		return err
	}
	r.nodes[node.ID] = node
	return nil
}

// DeleteNode removes a node unless children or standards still hang
// off it.
func (r *MemoryRepository) DeleteNode(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[id]; !ok {
		return &NotFoundError{ID: id, Err: ErrNodeNotFound}
	}
	for _, node := range r.nodes {
		if node.ParentID == id {
			return ErrNodeInUse
		}
	}
	for _, std := range r.stds {
		if std.NodeID == id {
			return ErrNodeInUse
		}
	}
	delete(r.nodes, id)
	return nil
}

// GetStandard returns the standard with the given id.
func (r *MemoryRepository) GetStandard(ctx context.Context, id string) (*standards.Standard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	std, ok := r.stds[id]
	if !ok {
		return nil, &NotFoundError{ID: id, Err: ErrStandardNotFound}
	}
	return std, nil
}

// ListStandards returns every standard, ordered by id.
func (r *MemoryRepository) ListStandards(ctx context.Context) ([]*standards.Standard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*standards.Standard, 0, len(r.stds))
	for _, std := range r.stds {
		out = append(out, std)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PutStandard creates or replaces a standard after validating it.
func (r *MemoryRepository) PutStandard(ctx context.Context, std *standards.Standard) error {
	if err := validator.ValidateStandard(std); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stds[std.ID] = std
	return nil
}

// DeleteStandard removes a standard.
func (r *MemoryRepository) DeleteStandard(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stds[id]; !ok {
		return &NotFoundError{ID: id, Err: ErrStandardNotFound}
	}
	delete(r.stds, id)
	return nil
}

// GetApplicableStandards resolves the standards applicable to the
// given dimensions.
func (r *MemoryRepository) GetApplicableStandards(ctx context.Context, dims standards.Dimensions) ([]*standards.Standard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stds := make([]*standards.Standard, 0, len(r.stds))
	for _, std := range r.stds {
		stds = append(stds, std)
	}
	return ResolveApplicable(r.nodesLocked(), stds, dims), nil
}

// Replace swaps the whole content atomically. The directory loader and
// the file watcher use it so readers never observe a half-applied
// reload.
func (r *MemoryRepository) Replace(nodes []*standards.StandardNode, stds []*standards.Standard) error {
	if err := validator.ValidateForest(nodes); err != nil {
		return err
	}
	newNodes := make(map[string]*standards.StandardNode, len(nodes))
	for _, node := range nodes {
		newNodes[node.ID] = node
	}
	newStds := make(map[string]*standards.Standard, len(stds))
	for _, std := range stds {
		if err := validator.ValidateStandard(std); err != nil {
			return err
		}
		if _, ok := newNodes[std.NodeID]; !ok {
			return &validator.Error{
				Subject:    fmt.Sprintf("standard %q", std.ID),
				Message:    fmt.Sprintf("node %q does not exist", std.NodeID),
				Suggestion: "declare the node in one of the loaded files",
			}
		}
		newStds[std.ID] = std
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = newNodes
	r.stds = newStds
	return nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryRepository) Close() error { return nil }
