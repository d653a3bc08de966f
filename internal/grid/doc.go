// Package grid computes uniform cell layouts over a sprite sheet canvas.
//
// A grid is described by a Config: fixed cell dimensions plus optional
// origin, per-cell padding, and inter-cell spacing. The package is pure
// geometry and never touches pixel data, which keeps it cheap enough to
// re-run on every parameter change while a caller tunes a layout.
//
// # Cell Placement
//
// The cell at column c, row r has its top-left corner at:
//
//	x = origin_x + c*(cell_width + spacing_x) + padding_x
//	y = origin_y + r*(cell_height + spacing_y) + padding_y
//
// Cells are produced in row-major order (left-to-right, then top-to-bottom).
// A cell is produced only when it fits entirely on the canvas; trailing cells
// that would hang past the right or bottom edge are skipped, never clamped.
//
// # Iteration
//
// Scanner walks cells lazily in the manner of bufio.Scanner:
//
//	sc, err := grid.NewScanner(cfg, sheetW, sheetH)
//	for sc.Next() {
//	    cell := sc.Cell()
//	    // ...
//	}
//
// Cells collects the full sequence eagerly, and Count computes the cell
// count without walking. All three are deterministic: the same Config and
// canvas produce the same sequence on every pass.
package grid
