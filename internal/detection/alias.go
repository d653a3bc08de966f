package detection

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// AliasGroup is a set of frames with byte-identical pixel content.
type AliasGroup struct {
	// Indices are positions into the input frame list, in first-seen
	// order. Always at least two entries.
	Indices []int `json:"indices"`

	// Width and Height are the shared frame dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AliasResult contains the duplicate-frame groups found on a sheet.
type AliasResult struct {
	Groups []AliasGroup `json:"groups"`
	Count  int          `json:"count"`
}

// FindAliases groups frames whose pixel content is identical.
//
// Sheets commonly repeat a frame (an idle pose reused across directions, a
// blink frame shared between animations); callers can collapse such
// duplicates into one stored sprite plus references. Frames are compared by
// exact RGBA bytes after normalizing the sheet, so two frames match only
// when every pixel matches.
//
// Parameters:
//   - img: The sheet the frames were cut from. Never mutated.
//   - frames: Frame rectangles in sheet coordinates. Indices in the result
//     refer to positions in this slice.
//
// Returns:
//   - *AliasResult: Groups of two or more identical frames, ordered by
//     their first member. Frames with no duplicate appear in no group.
//   - error: ErrInvalidInput when a frame is empty or extends outside the
//     sheet.
func FindAliases(img image.Image, frames []image.Rectangle) (*AliasResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	rgba := clone.AsRGBA(img)

	for i, f := range frames {
		if f.Dx() < 1 || f.Dy() < 1 {
			return nil, fmt.Errorf("%w: frame %d is empty", ErrInvalidInput, i)
		}
		if !f.In(rgba.Rect) {
			return nil, fmt.Errorf("%w: frame %d %v extends outside sheet %v", ErrInvalidInput, i, f, rgba.Rect)
		}
	}

	// Hash each frame's pixels; equal hashes are candidates, byte equality
	// decides.
	type frameKey struct {
		w, h int
		sum  uint64
	}
	pixels := make([][]byte, len(frames))
	keys := make([]frameKey, len(frames))
	for i, f := range frames {
		pixels[i] = framePixels(rgba, f)
		h := fnv.New64a()
		h.Write(pixels[i])
		keys[i] = frameKey{w: f.Dx(), h: f.Dy(), sum: h.Sum64()}
	}

	groups := make([]AliasGroup, 0)
	grouped := make([]bool, len(frames))
	for i := range frames {
		if grouped[i] {
			continue
		}
		g := AliasGroup{Indices: []int{i}, Width: frames[i].Dx(), Height: frames[i].Dy()}
		for j := i + 1; j < len(frames); j++ {
			if grouped[j] || keys[j] != keys[i] {
				continue
			}
			if !bytes.Equal(pixels[i], pixels[j]) {
				continue
			}
			g.Indices = append(g.Indices, j)
			grouped[j] = true
		}
		if len(g.Indices) > 1 {
			groups = append(groups, g)
		}
	}

	return &AliasResult{Groups: groups, Count: len(groups)}, nil
}

// framePixels copies the RGBA bytes of one frame row by row.
func framePixels(rgba *image.RGBA, f image.Rectangle) []byte {
	buf := make([]byte, 0, f.Dx()*f.Dy()*4)
	for y := f.Min.Y; y < f.Max.Y; y++ {
		start := rgba.PixOffset(f.Min.X, y)
		buf = append(buf, rgba.Pix[start:start+f.Dx()*4]...)
	}
	return buf
}
