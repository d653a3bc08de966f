package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/andybons/gogif"
	"github.com/disintegration/imaging"
)

// Animation frame rate bounds for GIF export.
const (
	MinGIFFPS     = 1
	MaxGIFFPS     = 30
	DefaultGIFFPS = 10
)

// ExportResult lists the files written by a frame export
type ExportResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// ExportFrames writes each frame rect to its own numbered image file under
// dir, named "<prefix>_NNN.<ext>" in frame order starting at 000.
//
// Parameters:
//   - img: The sheet to cut frames from.
//   - frames: Frame rects in output order; each must lie inside the sheet.
//   - dir: Output directory, created if missing.
//   - prefix: File name prefix; empty defaults to "frame".
//   - format: "png" (default) or "jpeg"/"jpg" (quality 90).
func ExportFrames(img image.Image, frames []image.Rectangle, dir, prefix, format string) (*ExportResult, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to export")
	}
	if prefix == "" {
		prefix = "frame"
	}

	var ext string
	switch format {
	case "", "png":
		ext = "png"
	case "jpg", "jpeg":
		ext = "jpg"
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	for i, r := range frames {
		if err := checkBounds(img, r); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	files := make([]string, 0, len(frames))
	for i, r := range frames {
		path := filepath.Join(dir, fmt.Sprintf("%s_%03d.%s", prefix, i, ext))
		if err := imaging.Save(imaging.Crop(img, r), path, imaging.JPEGQuality(90)); err != nil {
			return nil, fmt.Errorf("failed to save frame %d: %w", i, err)
		}
		files = append(files, path)
	}

	return &ExportResult{Dir: dir, Files: files, Count: len(files)}, nil
}

// GIFResult describes a written animated GIF
type GIFResult struct {
	Path   string `json:"path"`
	Frames int    `json:"frames"`
	FPS    int    `json:"fps"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ExportGIF assembles the frame rects into an animated GIF at path.
//
// Frames play in order at the given rate; fps is clamped to
// [MinGIFFPS, MaxGIFFPS] and 0 means DefaultGIFFPS. The GIF canvas takes the
// largest frame's dimensions; smaller frames sit at the top-left over
// transparency. Each frame is median-cut quantized to 255 colors with a
// leading transparent palette entry, so transparent sheet pixels stay
// transparent between frames.
func ExportGIF(img image.Image, frames []image.Rectangle, path string, fps int) (*GIFResult, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to export")
	}
	if fps == 0 {
		fps = DefaultGIFFPS
	}
	if fps < MinGIFFPS {
		fps = MinGIFFPS
	}
	if fps > MaxGIFFPS {
		fps = MaxGIFFPS
	}

	canvasW, canvasH := 0, 0
	for i, r := range frames {
		if err := checkBounds(img, r); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if r.Dx() > canvasW {
			canvasW = r.Dx()
		}
		if r.Dy() > canvasH {
			canvasH = r.Dy()
		}
	}

	delay := 100 / fps // GIF delays are in centiseconds

	var g gif.GIF
	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // Up to 255 colors plus 1 slot for transparency.
	for _, r := range frames {
		frame := imaging.Crop(img, r)
		canvas := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
		draw.Draw(canvas, frame.Bounds(), frame, image.Point{}, draw.Over)

		pal := image.NewPaletted(canvas.Bounds(), nil)
		quantizer.Quantize(pal, canvas.Bounds(), canvas, image.Point{})

		// Rebuild with color.Transparent first so the zero index, and thus
		// every undrawn pixel, is transparent.
		withTransparent := image.NewPaletted(canvas.Bounds(), append(color.Palette([]color.Color{color.Transparent}), pal.Palette...))
		draw.Draw(withTransparent, canvas.Bounds(), canvas, image.Point{}, draw.Over)

		g.Image = append(g.Image, withTransparent)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create gif: %w", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &g); err != nil {
		return nil, fmt.Errorf("failed to encode gif: %w", err)
	}

	return &GIFResult{
		Path:   path,
		Frames: len(frames),
		FPS:    fps,
		Width:  canvasW,
		Height: canvasH,
	}, nil
}
