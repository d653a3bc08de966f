package atlas

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Session ties a sprite tree to one loaded sheet. It owns region id
// allocation for that sheet and serializes all tree access, so handlers
// can share a session freely.
type Session struct {
	mu     sync.Mutex
	path   string
	width  int
	height int
	tree   *Tree

	// nextRegion only ever grows; removed ids are never reissued.
	nextRegion RegionID
}

// NewSession creates an empty session for a sheet of the given pixel
// dimensions. The tree root takes the sheet's file name.
func NewSession(path string, width, height int) *Session {
	return &Session{
		path:       path,
		width:      width,
		height:     height,
		tree:       NewTree(filepath.Base(path)),
		nextRegion: 1,
	}
}

// Path returns the sheet path this session was opened for.
func (s *Session) Path() string { return s.path }

// Width returns the sheet width in pixels.
func (s *Session) Width() int { return s.width }

// Height returns the sheet height in pixels.
func (s *Session) Height() int { return s.height }

// allocRegion hands out the next region id. Caller holds mu.
func (s *Session) allocRegion() RegionID {
	id := s.nextRegion
	s.nextRegion++
	return id
}

// AddGroup creates a group node under parent.
func (s *Session) AddGroup(parent NodeID, name string) (NodeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.AddGroup(parent, name)
}

// AddedLeaf describes one leaf created by AddLeaf or AddLeaves.
type AddedLeaf struct {
	Node   NodeID `json:"node"`
	Name   string `json:"name"`
	Region Region `json:"region"`
}

// AddLeaf inserts a single sprite leaf under parent. Bounds matching an
// existing leaf return that leaf with created=false instead of adding a
// second copy. Out-of-canvas or empty bounds are refused.
func (s *Session) AddLeaf(parent NodeID, name string, bounds Rect, src Source) (AddedLeaf, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tree.group(parent); err != nil {
		return AddedLeaf{}, false, err
	}

	plan := Resolve([]Rect{bounds}, s.width, s.height, s.tree.LiveRegions())
	if len(plan.Rejected) > 0 {
		if bounds.Empty() {
			return AddedLeaf{}, false, fmt.Errorf("%w: %s", ErrInvalidInput, plan.Rejected[0].Reason)
		}
		return AddedLeaf{}, false, fmt.Errorf("%w: %s", ErrOutOfBounds, plan.Rejected[0].Reason)
	}
	if len(plan.Duplicates) > 0 {
		id, ok := s.tree.FindLeafByBounds(bounds)
		if !ok {
			return AddedLeaf{}, false, fmt.Errorf("%w: duplicate bounds with no owning leaf", ErrNotFound)
		}
		n, err := s.tree.Get(id)
		if err != nil {
			return AddedLeaf{}, false, err
		}
		return AddedLeaf{Node: id, Name: n.Name, Region: *n.Region}, false, nil
	}

	region := Region{ID: s.allocRegion(), Bounds: bounds, Source: src}
	id, err := s.tree.AddLeaf(parent, name, region)
	if err != nil {
		return AddedLeaf{}, false, err
	}
	n, _ := s.tree.Get(id)
	return AddedLeaf{Node: id, Name: n.Name, Region: region}, true, nil
}

// BatchResult reports the outcome of a bulk leaf insertion.
type BatchResult struct {
	Added      []AddedLeaf `json:"added"`
	Duplicates []Rect      `json:"duplicates"`
	Rejected   []Rejection `json:"rejected"`
	Overlaps   []Overlap   `json:"overlaps"`
}

// AddLeaves inserts a batch of auto-named sprite leaves under parent.
// Invalid entries are reported in the result and the valid remainder is
// still applied; duplicates of live regions or of earlier batch entries
// collapse silently into Duplicates.
func (s *Session) AddLeaves(parent NodeID, bounds []Rect, src Source) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tree.group(parent); err != nil {
		return nil, err
	}

	plan := Resolve(bounds, s.width, s.height, s.tree.LiveRegions())
	res := &BatchResult{
		Added:      make([]AddedLeaf, 0, len(plan.Accepted)),
		Duplicates: plan.Duplicates,
		Rejected:   plan.Rejected,
		Overlaps:   plan.Overlaps,
	}

	for _, b := range plan.Accepted {
		region := Region{ID: s.allocRegion(), Bounds: b, Source: src}
		id, err := s.tree.AddLeaf(parent, "", region)
		if err != nil {
			return nil, err
		}
		n, _ := s.tree.Get(id)
		res.Added = append(res.Added, AddedLeaf{Node: id, Name: n.Name, Region: region})
	}
	return res, nil
}

// Remove deletes a node and its subtree, returning the region ids freed
// by removed leaves. Freed ids are never reused.
func (s *Session) Remove(id NodeID) ([]RegionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Remove(id)
}

// Rename sets a node's display name.
func (s *Session) Rename(id NodeID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Rename(id, name)
}

// Reparent moves a node under a new parent group.
func (s *Session) Reparent(id, newParent NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Reparent(id, newParent)
}

// Reorder replaces a group's child order.
func (s *Session) Reorder(parent NodeID, order []NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Reorder(parent, order)
}

// Snapshot deep-copies the subtree rooted at id.
func (s *Session) Snapshot(id NodeID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Snapshot(id)
}

// LeafRegions returns the regions of every leaf under id in depth-first
// order.
func (s *Session) LeafRegions(id NodeID) ([]Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.LeafRegions(id)
}

// Node returns a copy of the node with the given id.
func (s *Session) Node(id NodeID) (Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.tree.Get(id)
	if err != nil {
		return Node{}, err
	}
	cp := *n
	cp.Children = append([]NodeID(nil), n.Children...)
	if n.Region != nil {
		r := *n.Region
		cp.Region = &r
	}
	return cp, nil
}

// Regions returns every live region in the session in depth-first order.
func (s *Session) Regions() []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.LiveRegions()
}

// SetBounds replaces a leaf's region bounds, revalidating against the
// canvas and the other live regions. The region keeps its id and its
// source becomes SourceManual.
func (s *Session) SetBounds(id NodeID, bounds Rect) (Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.tree.Get(id)
	if err != nil {
		return Region{}, err
	}
	if n.Kind != KindLeaf {
		return Region{}, fmt.Errorf("%w: node %d is a group, not a leaf", ErrInvalidInput, id)
	}
	if bounds.Empty() {
		return Region{}, fmt.Errorf("%w: bounds %dx%d have no area", ErrInvalidInput, bounds.Width, bounds.Height)
	}
	if !bounds.Inside(s.width, s.height) {
		return Region{}, fmt.Errorf("%w: bounds (%d,%d) %dx%d outside %dx%d canvas", ErrOutOfBounds, bounds.X, bounds.Y, bounds.Width, bounds.Height, s.width, s.height)
	}
	for _, r := range s.tree.LiveRegions() {
		if r.ID != n.Region.ID && r.Bounds == bounds {
			return Region{}, fmt.Errorf("%w: bounds already held by region %d", ErrInvalidInput, r.ID)
		}
	}

	n.Region.Bounds = bounds
	n.Region.Source = SourceManual
	return *n.Region, nil
}

// Registry maps sheet paths to their sessions. Sessions live in memory
// only; unloading a sheet drops its tree.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Open returns the session for path, creating it with the given sheet
// dimensions on first use.
func (r *Registry) Open(path string, width, height int) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[path]; ok {
		return s
	}
	s := NewSession(path, width, height)
	r.sessions[path] = s
	return s
}

// Get returns the session for path if one exists.
func (r *Registry) Get(path string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[path]
	return s, ok
}

// Drop discards the session for path, if any.
func (r *Registry) Drop(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, path)
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
