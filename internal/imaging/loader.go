package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// ImageCache provides thread-safe caching of loaded sprite sheets to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once
// a sheet is loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines. All methods
// use appropriate locking to prevent data races.
//
// # Memory Management
//
// Cached sheets remain in memory until explicitly removed via Evict() or
// Clear(). For long-running processes handling many sheets, consider periodic
// cleanup to prevent unbounded memory growth.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/sheet.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use img...
//	cache.Evict("/path/to/sheet.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty sheet cache.
//
// The returned cache is ready for immediate use and is safe for concurrent
// access.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves a sheet from the cache or loads it from disk if not cached.
//
// Parameters:
//   - path: Absolute or relative file path to the sheet. Supported formats
//     are PNG, JPEG, GIF, and BMP.
//
// Returns:
//   - image.Image: The decoded sheet. The concrete type depends on the image
//     format and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
//   - error: Non-nil if the file cannot be opened or decoded, or if the
//     decoded buffer has no area.
//
// The sheet is cached using the exact path string provided. Different paths
// to the same file (e.g., relative vs absolute) will result in separate
// cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, GIF, or BMP image
//   - Returns error if the decoded buffer is zero-area
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet: %w", err)
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("invalid sheet %s: zero-area image", path)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all sheets from the cache, freeing the associated memory.
//
// After Clear(), all sheets must be reloaded from disk on subsequent Load()
// calls.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific sheet from the cache by its path.
//
// Parameters:
//   - path: The exact path string used when the sheet was loaded.
//
// If the path is not in the cache, this method does nothing. After eviction,
// the next Load() call for this path will read from disk.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of sheets currently cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// SheetInfo contains metadata about a loaded sprite sheet file.
//
// This struct provides essential information about a sheet without requiring
// the caller to analyze the pixel data directly.
type SheetInfo struct {
	// Width is the sheet width in pixels.
	Width int `json:"width"`

	// Height is the sheet height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", "bmp", or
	// "unknown". Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded color model carries an alpha
	// (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the sheet file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadSheetInfo loads a sheet and returns comprehensive metadata about it.
//
// This function loads the sheet into the cache (if not already cached) and
// extracts metadata including dimensions, format, color depth, alpha channel
// presence, and file size.
//
// Parameters:
//   - cache: The sheet cache to use for loading. Must not be nil.
//   - path: Path to the sheet file.
//
// Returns:
//   - *SheetInfo: Metadata about the sheet.
//   - error: Non-nil if the sheet cannot be loaded or the file cannot be
//     stat'd.
//
// # Format Detection
//
// The format is determined by file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - ".bmp" -> "bmp"
//   - Other extensions -> "unknown"
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadSheetInfo(cache *ImageCache, path string) (*SheetInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()

	// Get file info for size
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Determine format from extension
	ext := filepath.Ext(path)
	format := "unknown"
	switch ext {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	}

	// Check for alpha channel
	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &SheetInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of a sheet.
//
// This is a lightweight result type for when only dimensions are needed,
// without the additional metadata provided by SheetInfo.
type DimensionsResult struct {
	// Width is the sheet width in pixels.
	Width int `json:"width"`

	// Height is the sheet height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of a sheet without additional
// metadata.
//
// This is a lightweight alternative to LoadSheetInfo when only the width and
// height are needed. The sheet is loaded into the cache if not already
// present.
//
// Parameters:
//   - cache: The sheet cache to use for loading. Must not be nil.
//   - path: Path to the sheet file.
//
// Returns:
//   - *DimensionsResult: The sheet dimensions.
//   - error: Non-nil if the sheet cannot be loaded.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
