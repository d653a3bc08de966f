package atlas

import (
	"fmt"
)

// NodeID identifies a node within one tree. IDs are dense and assigned
// in creation order; the root is always 0.
type NodeID int

// RootID is the id of the implicit root group every tree starts with.
// The root cannot be removed or reparented.
const RootID NodeID = 0

// NodeKind distinguishes grouping nodes from sprite leaves.
type NodeKind int

const (
	// KindGroup is an organizational node; it carries no region.
	KindGroup NodeKind = iota
	// KindLeaf wraps exactly one region.
	KindLeaf
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalJSON renders the kind as its name rather than an integer.
func (k NodeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Node is one entry in a sprite tree. Groups have Children and a nil
// Region; leaves have a Region and no Children.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name"`
	Parent   NodeID   `json:"parent"`
	Children []NodeID `json:"children,omitempty"`
	Region   *Region  `json:"region,omitempty"`
}

// Tree is an arena-backed sprite hierarchy. Every mutating operation
// validates its inputs fully before touching the tree, so a failed call
// leaves the structure exactly as it was.
//
// Tree is not safe for concurrent use; Session serializes access.
type Tree struct {
	nodes    map[NodeID]*Node
	nextID   NodeID
	groupSeq int
	leafSeq  map[NodeID]int
}

// NewTree builds a tree holding only the root group. An empty rootName
// defaults to "Sheet".
func NewTree(rootName string) *Tree {
	if rootName == "" {
		rootName = "Sheet"
	}
	t := &Tree{
		nodes:   make(map[NodeID]*Node),
		nextID:  RootID + 1,
		leafSeq: make(map[NodeID]int),
	}
	t.nodes[RootID] = &Node{
		ID:     RootID,
		Kind:   KindGroup,
		Name:   rootName,
		Parent: -1,
	}
	return t
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Get returns the node with the given id, or ErrNotFound.
func (t *Tree) Get(id NodeID) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %d", ErrNotFound, id)
	}
	return n, nil
}

// group fetches id and insists it is a group node.
func (t *Tree) group(id NodeID) (*Node, error) {
	n, err := t.Get(id)
	if err != nil {
		return nil, err
	}
	if n.Kind != KindGroup {
		return nil, fmt.Errorf("%w: node %d is a leaf, not a group", ErrInvalidInput, id)
	}
	return n, nil
}

// AddGroup creates a group under parent. An empty name auto-assigns
// "Group N", where N counts groups created over the tree's lifetime.
func (t *Tree) AddGroup(parent NodeID, name string) (NodeID, error) {
	p, err := t.group(parent)
	if err != nil {
		return 0, err
	}
	if name == "" {
		t.groupSeq++
		name = fmt.Sprintf("Group %d", t.groupSeq)
	}

	id := t.nextID
	t.nextID++
	t.nodes[id] = &Node{
		ID:     id,
		Kind:   KindGroup,
		Name:   name,
		Parent: parent,
	}
	p.Children = append(p.Children, id)
	return id, nil
}

// AddLeaf creates a leaf under parent wrapping region. An empty name
// auto-assigns "<parent name> N", where N counts leaves added to that
// parent over its lifetime.
func (t *Tree) AddLeaf(parent NodeID, name string, region Region) (NodeID, error) {
	p, err := t.group(parent)
	if err != nil {
		return 0, err
	}
	if name == "" {
		t.leafSeq[parent]++
		name = fmt.Sprintf("%s %d", p.Name, t.leafSeq[parent])
	}

	r := region
	id := t.nextID
	t.nextID++
	t.nodes[id] = &Node{
		ID:     id,
		Kind:   KindLeaf,
		Name:   name,
		Parent: parent,
		Region: &r,
	}
	p.Children = append(p.Children, id)
	return id, nil
}

// Remove deletes a node and its whole subtree, returning the region ids
// of every removed leaf in depth-first order. The root is not removable.
func (t *Tree) Remove(id NodeID) ([]RegionID, error) {
	if id == RootID {
		return nil, fmt.Errorf("%w: root group cannot be removed", ErrInvalidInput)
	}
	n, err := t.Get(id)
	if err != nil {
		return nil, err
	}

	parent := t.nodes[n.Parent]
	parent.Children = removeID(parent.Children, id)

	var removed []RegionID
	t.removeSubtree(id, &removed)
	return removed, nil
}

func (t *Tree) removeSubtree(id NodeID, removed *[]RegionID) {
	n := t.nodes[id]
	if n.Kind == KindLeaf {
		*removed = append(*removed, n.Region.ID)
	}
	for _, child := range n.Children {
		t.removeSubtree(child, removed)
	}
	delete(t.leafSeq, id)
	delete(t.nodes, id)
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Rename sets a node's name. Names need not be unique; an empty name is
// refused. Renaming does not renumber auto-named siblings.
func (t *Tree) Rename(id NodeID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	n, err := t.Get(id)
	if err != nil {
		return err
	}
	n.Name = name
	return nil
}

// Reparent moves a node under a new parent group, appended as the last
// child. Moving the root, or moving a node into itself or one of its own
// descendants, is refused and the tree left unchanged.
func (t *Tree) Reparent(id, newParent NodeID) error {
	if id == RootID {
		return fmt.Errorf("%w: root group cannot be reparented", ErrInvalidInput)
	}
	n, err := t.Get(id)
	if err != nil {
		return err
	}
	p, err := t.group(newParent)
	if err != nil {
		return err
	}
	if id == newParent || t.isDescendant(newParent, id) {
		return fmt.Errorf("%w: node %d cannot move under its own subtree", ErrCycle, id)
	}

	old := t.nodes[n.Parent]
	old.Children = removeID(old.Children, id)
	n.Parent = newParent
	p.Children = append(p.Children, id)
	return nil
}

// isDescendant reports whether id sits somewhere below ancestor.
func (t *Tree) isDescendant(id, ancestor NodeID) bool {
	for _, child := range t.nodes[ancestor].Children {
		if child == id || t.isDescendant(id, child) {
			return true
		}
	}
	return false
}

// Reorder replaces a group's child order. The new order must be a
// permutation of the current children; anything else is refused with the
// order unchanged.
func (t *Tree) Reorder(parent NodeID, order []NodeID) error {
	p, err := t.group(parent)
	if err != nil {
		return err
	}
	if len(order) != len(p.Children) {
		return fmt.Errorf("%w: order lists %d ids, group has %d children", ErrInvalidInput, len(order), len(p.Children))
	}

	pending := make(map[NodeID]bool, len(p.Children))
	for _, id := range p.Children {
		pending[id] = true
	}
	for _, id := range order {
		if !pending[id] {
			return fmt.Errorf("%w: node %d is not a child of group %d", ErrInvalidInput, id, parent)
		}
		delete(pending, id)
	}

	p.Children = append([]NodeID(nil), order...)
	return nil
}

// Walk visits the subtree rooted at id in depth-first order, parents
// before children. Returning false from visit stops the walk.
func (t *Tree) Walk(id NodeID, visit func(*Node) bool) error {
	if _, err := t.Get(id); err != nil {
		return err
	}
	t.walk(id, visit)
	return nil
}

func (t *Tree) walk(id NodeID, visit func(*Node) bool) bool {
	n := t.nodes[id]
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !t.walk(child, visit) {
			return false
		}
	}
	return true
}

// LiveRegions returns every region held by a leaf anywhere in the tree,
// in depth-first order.
func (t *Tree) LiveRegions() []Region {
	var regions []Region
	t.walk(RootID, func(n *Node) bool {
		if n.Kind == KindLeaf {
			regions = append(regions, *n.Region)
		}
		return true
	})
	return regions
}

// LeafRegions returns the regions of every leaf in the subtree rooted at
// id, in depth-first order.
func (t *Tree) LeafRegions(id NodeID) ([]Region, error) {
	if _, err := t.Get(id); err != nil {
		return nil, err
	}
	var regions []Region
	t.walk(id, func(n *Node) bool {
		if n.Kind == KindLeaf {
			regions = append(regions, *n.Region)
		}
		return true
	})
	return regions, nil
}

// FindLeafByBounds returns the first leaf, in depth-first order, whose
// region bounds exactly match r.
func (t *Tree) FindLeafByBounds(r Rect) (NodeID, bool) {
	found := NodeID(-1)
	t.walk(RootID, func(n *Node) bool {
		if n.Kind == KindLeaf && n.Region.Bounds == r {
			found = n.ID
			return false
		}
		return true
	})
	return found, found >= 0
}

// Snapshot is a detached copy of a subtree, safe to hold after further
// tree mutations.
type Snapshot struct {
	ID       NodeID     `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Name     string     `json:"name"`
	Region   *Region    `json:"region,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
}

// Snapshot deep-copies the subtree rooted at id.
func (t *Tree) Snapshot(id NodeID) (Snapshot, error) {
	n, err := t.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return t.snapshot(n), nil
}

func (t *Tree) snapshot(n *Node) Snapshot {
	s := Snapshot{
		ID:   n.ID,
		Kind: n.Kind,
		Name: n.Name,
	}
	if n.Region != nil {
		r := *n.Region
		s.Region = &r
	}
	for _, child := range n.Children {
		s.Children = append(s.Children, t.snapshot(t.nodes[child]))
	}
	return s
}
