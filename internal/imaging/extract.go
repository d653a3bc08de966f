package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SpriteResult contains an extracted sprite encoded for transport
type SpriteResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// checkBounds validates that r is a usable sprite rectangle on the sheet
func checkBounds(img image.Image, r image.Rectangle) error {
	if r.Dx() < 1 || r.Dy() < 1 {
		return fmt.Errorf("sprite bounds (%d,%d)-(%d,%d) have no area",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	}
	bounds := img.Bounds()
	if !r.In(bounds) {
		return fmt.Errorf("sprite bounds (%d,%d)-(%d,%d) outside sheet bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return nil
}

// ExtractSprite crops a sprite's bounds out of a sheet, optionally rescaling
func ExtractSprite(img image.Image, r image.Rectangle, scale float64) (*SpriteResult, error) {
	if err := checkBounds(img, r); err != nil {
		return nil, err
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode sprite: %w", err)
	}

	return &SpriteResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveSprite writes a sprite's pixels to disk. The output format follows the
// file extension; JPEG output uses quality 90.
func SaveSprite(img image.Image, r image.Rectangle, path string) error {
	if err := checkBounds(img, r); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cropped := imaging.Crop(img, r)
	if err := imaging.Save(cropped, path, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("failed to save sprite: %w", err)
	}
	return nil
}

// DefaultThumbnailSize is the bounding box for tree thumbnails.
const DefaultThumbnailSize = 64

// Thumbnail renders a sprite scaled down to fit within maxSize×maxSize,
// preserving aspect ratio. Sprites already within the box are not upscaled.
// A maxSize < 1 uses DefaultThumbnailSize.
func Thumbnail(img image.Image, r image.Rectangle, maxSize int) (*SpriteResult, error) {
	if err := checkBounds(img, r); err != nil {
		return nil, err
	}
	if maxSize < 1 {
		maxSize = DefaultThumbnailSize
	}

	thumb := imaging.Fit(imaging.Crop(img, r), maxSize, maxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &SpriteResult{
		Width:       thumb.Bounds().Dx(),
		Height:      thumb.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
