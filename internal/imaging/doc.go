// Package imaging provides sheet loading and pixel-level operations for the
// sprite MCP server.
//
// This package implements the image-facing half of the toolset: loading and
// caching sprite sheets, extracting individual sprites, rendering annotated
// previews, palette analysis, and exporting frame sequences as numbered
// images or animated GIFs. All operations work with standard Go image.Image
// values and use a coordinate system where (0,0) is at the top-left corner,
// X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Sprite bounds follow image.Rectangle convention: Min inclusive,
//     Max exclusive
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other operations are
// stateless reads of their input image and can run concurrently on the same
// sheet; loaded sheets are never mutated.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Sprite bounds outside the sheet or with no area
//   - File I/O errors during sheet loading or export
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated operations on the same sheet, use ImageCache to avoid
// redundant disk reads. Large sheets may consume significant memory when
// cached; use Evict() or Clear() to manage memory for long-running
// processes. Palette analysis subsamples large regions to keep clustering
// tractable.
package imaging
