package atlas

import (
	"errors"
	"image"
)

// Sentinel errors for the editing model. Wrap-aware: test with errors.Is.
var (
	// ErrNotFound indicates a node id that does not exist (or no longer
	// exists) in the tree.
	ErrNotFound = errors.New("node not found")

	// ErrCycle indicates a reparent that would make a node its own
	// ancestor.
	ErrCycle = errors.New("reparent would create a cycle")

	// ErrOutOfBounds indicates sprite bounds extending outside the sheet
	// canvas.
	ErrOutOfBounds = errors.New("bounds outside sheet canvas")

	// ErrInvalidInput indicates an operation argument that can never be
	// valid: an empty name, a zero-area rectangle, a leaf where a group
	// is required.
	ErrInvalidInput = errors.New("invalid input")
)

// RegionID identifies a sprite region within a session. IDs increase
// monotonically and are never reused, even after the region is removed.
type RegionID int

// Source records how a region's bounds were produced.
type Source string

const (
	// SourceGrid marks regions materialized from grid cells.
	SourceGrid Source = "grid"

	// SourceDetected marks regions found by boundary detection.
	SourceDetected Source = "detected"

	// SourceManual marks regions placed or edited by hand.
	SourceManual Source = "manual"
)

// Rect is a sprite rectangle in sheet coordinates: inclusive top-left
// corner plus extents. Valid sprite bounds always have positive width and
// height.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width < 1 || r.Height < 1
}

// Inside reports whether the rect lies fully inside a canvasW×canvasH
// canvas.
func (r Rect) Inside(canvasW, canvasH int) bool {
	return !r.Empty() && r.X >= 0 && r.Y >= 0 && r.X+r.Width <= canvasW && r.Y+r.Height <= canvasH
}

// Overlaps reports whether two rects share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X && r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Image converts the rect to a stdlib image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Region is a resolved sprite region: stable id, bounds, provenance.
type Region struct {
	ID     RegionID `json:"id"`
	Bounds Rect     `json:"bounds"`
	Source Source   `json:"source"`
}
