package detection

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/segment"
)

// Mask modes reported in Result.MaskMode.
const (
	// MaskAlpha means foreground was decided by the alpha channel.
	MaskAlpha = "alpha"

	// MaskLuminance means the sheet carried no transparency and foreground
	// was decided by brightness instead.
	MaskLuminance = "luminance"
)

// foregroundMask builds the boolean foreground mask for a sheet.
//
// When the sheet carries transparency, a pixel is foreground iff its alpha
// is strictly greater than threshold. A fully opaque sheet has no usable
// alpha, so it falls back to a luminance mask where any pixel brighter than
// black counts as foreground, the convention for sheets prepared on solid
// black ground.
func foregroundMask(img image.Image, threshold uint8) ([][]bool, string) {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	width := b.Dx()
	height := b.Dy()

	opaque := true
	mask := make([][]bool, height)
	for y := 0; y < height; y++ {
		mask[y] = make([]bool, width)
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		for x := 0; x < width; x++ {
			a := row[x*4+3]
			if a < 255 {
				opaque = false
			}
			mask[y][x] = a > threshold
		}
	}
	if !opaque {
		return mask, MaskAlpha
	}

	// No alpha information anywhere: threshold on luminance instead.
	gray := segment.Threshold(img, 1)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := 0; x < width; x++ {
			mask[y][x] = row[x] != 0
		}
	}
	return mask, MaskLuminance
}
