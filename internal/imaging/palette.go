package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// DefaultPaletteSize is the number of swatches returned when no count is
// requested.
const DefaultPaletteSize = 5

// maxPaletteSamples caps how many pixels feed the clusterer; larger regions
// are subsampled on a uniform step.
const maxPaletteSamples = 12000

// Swatch is one palette entry: a color and the share of sampled pixels that
// clustered to it.
type Swatch struct {
	Hex   string  `json:"hex"`
	Ratio float64 `json:"ratio"`
}

// PaletteResult contains the color palette of a sheet region.
//
// Swatches are ordered by cluster population, most common first. Dominant is
// the single most representative color of the region as a hex string, and can
// differ from Swatches[0] since it is computed by a separate histogram pass.
type PaletteResult struct {
	Swatches []Swatch `json:"swatches"`
	Dominant string   `json:"dominant,omitempty"`
	Count    int      `json:"count"`
}

// Palette extracts the dominant colors of a sheet region by k-means
// clustering in Lab space.
//
// Parameters:
//   - img: The sheet to analyze.
//   - r: Region to analyze; must lie inside the sheet with positive area.
//   - count: Maximum number of swatches. Values < 1 use DefaultPaletteSize.
//     Fewer swatches come back when the region holds fewer distinct samples.
//
// Fully transparent pixels (alpha == 0) carry no color and are excluded from
// the sample set. A region with only transparent pixels yields an empty
// palette, not an error.
//
// # Algorithm
//
//  1. Crop the region and subsample pixels on a uniform grid so at most
//     maxPaletteSamples observations feed the clusterer.
//  2. Convert each sampled pixel to Lab, a perceptually uniform space where
//     Euclidean distance approximates visual difference.
//  3. Partition the observations into count clusters with k-means.
//  4. Convert each cluster center back to sRGB and report it with its
//     population share, sorted most common first.
func Palette(img image.Image, r image.Rectangle, count int) (*PaletteResult, error) {
	if err := checkBounds(img, r); err != nil {
		return nil, err
	}
	if count < 1 {
		count = DefaultPaletteSize
	}

	region := imaging.Crop(img, r)
	w, h := region.Bounds().Dx(), region.Bounds().Dy()

	// Subsample to keep kmeans tractable on large regions.
	step := 1
	if w*h > maxPaletteSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxPaletteSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxPaletteSamples)
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			i := region.PixOffset(x, y)
			if region.Pix[i+3] == 0 {
				continue
			}
			c := colorful.Color{
				R: float64(region.Pix[i]) / 255.0,
				G: float64(region.Pix[i+1]) / 255.0,
				B: float64(region.Pix[i+2]) / 255.0,
			}
			l, a, b := c.Lab()
			dataset = append(dataset, clusters.Coordinates{l, a, b})
		}
	}
	if len(dataset) == 0 {
		return &PaletteResult{Swatches: []Swatch{}}, nil
	}

	k := count
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("palette clustering failed: %w", err)
	}

	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	swatches := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		center := c.Center
		if len(center) < 3 {
			continue
		}
		col := colorful.Lab(center[0], center[1], center[2]).Clamped()
		swatches = append(swatches, Swatch{
			Hex:   col.Hex(),
			Ratio: float64(len(c.Observations)) / float64(len(dataset)),
		})
	}

	return &PaletteResult{
		Swatches: swatches,
		Dominant: dominantcolor.Hex(dominantcolor.Find(region)),
		Count:    len(swatches),
	}, nil
}
