package detection

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// ErrInvalidConfig indicates detection parameters that can never produce a
// meaningful result, such as a non-positive minimum sprite size.
var ErrInvalidConfig = errors.New("invalid detection configuration")

// ErrInvalidInput indicates an input buffer the detector cannot scan, such
// as a zero-area image.
var ErrInvalidInput = errors.New("invalid detection input")

// Config controls a sprite boundary detection pass.
type Config struct {
	// AlphaThreshold is the transparency cutoff: a pixel is foreground
	// when its alpha value is strictly greater than this. 0 means any
	// non-transparent pixel counts.
	AlphaThreshold uint8 `json:"alpha_threshold"`

	// MinWidth and MinHeight discard detected boxes smaller than this
	// in either dimension. Must be at least 1.
	MinWidth  int `json:"min_width"`
	MinHeight int `json:"min_height"`

	// MergeGap merges boxes separated by at most this many pixels along
	// both axes. 0 disables merging.
	MergeGap int `json:"merge_gap"`
}

// DefaultConfig returns the detection parameters that work for most sheets:
// any visible pixel is foreground, sprites are at least 8×8, no merging.
func DefaultConfig() Config {
	return Config{AlphaThreshold: 0, MinWidth: 8, MinHeight: 8, MergeGap: 0}
}

// Validate reports whether the configuration is usable, wrapping
// ErrInvalidConfig when it is not.
func (c Config) Validate() error {
	if c.MinWidth < 1 || c.MinHeight < 1 {
		return fmt.Errorf("%w: minimum size %dx%d, both dimensions must be positive", ErrInvalidConfig, c.MinWidth, c.MinHeight)
	}
	if c.MergeGap < 0 {
		return fmt.Errorf("%w: merge gap %d must be non-negative", ErrInvalidConfig, c.MergeGap)
	}
	return nil
}

// Region is one detected sprite bounding box.
type Region struct {
	// X, Y is the top-left corner of the box, inclusive.
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the box extents in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is Width × Height.
	Area int `json:"area"`

	// Pixels is the number of foreground pixels inside the box. For a
	// merged region it is the sum over the merged components.
	Pixels int `json:"pixels"`
}

// Result contains the outcome of one detection pass.
type Result struct {
	// Regions is the list of detected sprite boxes, sorted by ascending
	// (y, x). Empty when the sheet has no foreground at all.
	Regions []Region `json:"regions"`

	// Count is the number of regions.
	Count int `json:"count"`

	// Merged is the number of box merges performed by the merge-gap pass.
	Merged int `json:"merged"`

	// MaskMode reports how foreground was decided: "alpha" or "luminance".
	MaskMode string `json:"mask_mode"`
}

// Detect finds sprite bounding boxes on a sheet.
//
// Parameters:
//   - img: The sheet to scan. Never mutated.
//   - cfg: Detection parameters; see Config.
//
// Returns:
//   - *Result: Detected regions sorted by ascending (y, x). A sheet with
//     no foreground pixels yields an empty (non-error) result.
//   - error: ErrInvalidConfig for unusable parameters, ErrInvalidInput for
//     a nil or zero-area image.
//
// # Algorithm
//
//  1. Build the foreground mask (alpha threshold, or luminance fallback
//     for sheets without transparency)
//  2. Flood-fill 8-connected components, one bounding box per component
//  3. Drop boxes smaller than MinWidth×MinHeight
//  4. Merge boxes within MergeGap of each other, to a fixpoint
//  5. Sort by (y, x)
func Detect(img image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero-area buffer %dx%d", ErrInvalidInput, width, height)
	}

	mask, mode := foregroundMask(img, cfg.AlphaThreshold)

	components := findComponents(mask, width, height)

	// Filter out noise below the minimum sprite size.
	regions := make([]Region, 0, len(components))
	for _, r := range components {
		if r.Width >= cfg.MinWidth && r.Height >= cfg.MinHeight {
			regions = append(regions, r)
		}
	}

	merged := 0
	if cfg.MergeGap > 0 {
		regions, merged = mergeRegions(regions, cfg.MergeGap)
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Y != regions[j].Y {
			return regions[i].Y < regions[j].Y
		}
		return regions[i].X < regions[j].X
	})

	return &Result{
		Regions:  regions,
		Count:    len(regions),
		Merged:   merged,
		MaskMode: mode,
	}, nil
}

// point is a pixel coordinate on the mask.
type point struct {
	x, y int
}

// findComponents locates 8-connected components of foreground pixels,
// returning one Region per component in scan order.
func findComponents(mask [][]bool, width, height int) []Region {
	visited := make([][]bool, height)
	for i := range visited {
		visited[i] = make([]bool, width)
	}

	regions := make([]Region, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] && !visited[y][x] {
				regions = append(regions, fillComponent(mask, visited, x, y, width, height))
			}
		}
	}
	return regions
}

// fillComponent flood-fills the component containing (startX, startY) with
// an explicit stack, tracking the bounding box and pixel count as it goes.
func fillComponent(mask, visited [][]bool, startX, startY, width, height int) Region {
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	pixels := 0

	stack := []point{{startX, startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= width || p.y < 0 || p.y >= height {
			continue
		}
		if visited[p.y][p.x] || !mask[p.y][p.x] {
			continue
		}
		visited[p.y][p.x] = true
		pixels++

		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		// Diagonals connect: push the full 8-neighborhood.
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, point{p.x + dx, p.y + dy})
			}
		}
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	return Region{X: minX, Y: minY, Width: w, Height: h, Area: w * h, Pixels: pixels}
}
