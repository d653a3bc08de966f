// Package detection locates sprite boundaries on a sprite sheet.
//
// The detector treats the sheet as a boolean foreground mask and groups
// foreground pixels into connected components, one bounding box per
// component. It is the automatic counterpart to laying a fixed grid over a
// sheet: it finds sprites wherever they sit, at whatever size they are.
//
// # Algorithm
//
// A detection pass runs the following pipeline:
//
//  1. Masking: a pixel is foreground when its alpha value exceeds the
//     configured threshold. Sheets without transparency fall back to a
//     luminance mask (anything brighter than black is foreground).
//  2. Component labeling: unvisited foreground pixels seed a flood fill
//     with 8-connectivity, so diagonally touching pixels belong to the
//     same sprite. Each fill records its bounding box and pixel count.
//  3. Size filtering: boxes narrower than min_width or shorter than
//     min_height are discarded as noise (stray pixels, dust, shadows).
//  4. Gap merging: when merge_gap > 0, boxes separated by at most that many
//     pixels along both axes are merged into their union, repeatedly, so a
//     sprite drawn in disconnected parts (a head floating above a body)
//     comes out as one region. merge_gap = 0 disables merging entirely.
//  5. Ordering: results are sorted by ascending (y, x) so output order is
//     stable across runs and matches reading order on the sheet.
//
// # Coordinate System
//
// Origin (0, 0) at top-left, X rightward, Y downward. Regions report the
// inclusive top-left position plus width and height.
//
// # Determinism
//
// Detection never mutates the input image and is a pure function of the
// image and Config: the same inputs always produce the same regions in the
// same order.
//
// # Limitations
//
// The detector assumes sprites are separated by transparent (or black)
// ground. Sprites that touch, even diagonally, come back as a single
// region; overlapping sprites cannot be told apart at all. Sheets drawn on
// an opaque non-black background need their background keyed out before
// detection, since the luminance fallback only recognizes black as ground.
package detection
