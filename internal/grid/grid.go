package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a grid configuration that can never produce a
// valid cell layout. Use errors.Is to test for it.
var ErrInvalidConfig = errors.New("invalid grid configuration")

// Config describes a uniform cell layout over a sprite sheet.
//
// All values are in pixels. Origin shifts the whole grid; padding offsets
// every cell within its slot; spacing separates adjacent slots. Cell
// dimensions must be positive, everything else non-negative.
type Config struct {
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
	OriginX    int `json:"origin_x"`
	OriginY    int `json:"origin_y"`
	SpacingX   int `json:"spacing_x"`
	SpacingY   int `json:"spacing_y"`
	PaddingX   int `json:"padding_x"`
	PaddingY   int `json:"padding_y"`
}

// DefaultConfig returns the standard starting layout: 32×32 cells with no
// origin shift, spacing, or padding.
func DefaultConfig() Config {
	return Config{CellWidth: 32, CellHeight: 32}
}

// Validate reports whether the configuration can produce cells.
//
// Returns an error wrapping ErrInvalidConfig when cell dimensions are not
// positive or any origin/spacing/padding value is negative. A configuration
// whose origin or padding pushes every cell off the canvas is valid; it
// simply yields zero cells.
func (c Config) Validate() error {
	if c.CellWidth < 1 || c.CellHeight < 1 {
		return fmt.Errorf("%w: cell size %dx%d, both dimensions must be positive", ErrInvalidConfig, c.CellWidth, c.CellHeight)
	}
	if c.OriginX < 0 || c.OriginY < 0 {
		return fmt.Errorf("%w: origin (%d,%d) must be non-negative", ErrInvalidConfig, c.OriginX, c.OriginY)
	}
	if c.SpacingX < 0 || c.SpacingY < 0 {
		return fmt.Errorf("%w: spacing (%d,%d) must be non-negative", ErrInvalidConfig, c.SpacingX, c.SpacingY)
	}
	if c.PaddingX < 0 || c.PaddingY < 0 {
		return fmt.Errorf("%w: padding (%d,%d) must be non-negative", ErrInvalidConfig, c.PaddingX, c.PaddingY)
	}
	return nil
}

// cellOrigin returns the top-left corner of the cell at (row, col).
func (c Config) cellOrigin(row, col int) (x, y int) {
	x = c.OriginX + col*(c.CellWidth+c.SpacingX) + c.PaddingX
	y = c.OriginY + row*(c.CellHeight+c.SpacingY) + c.PaddingY
	return x, y
}

// Cell is a single grid cell placed on the canvas.
//
// Row and Col are grid coordinates; Index is the running position in
// row-major emission order, starting at 0.
type Cell struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Index  int `json:"index"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scanner produces the cells of a grid one at a time, in row-major order.
//
// A Scanner is restartable via Reset and finite: Next returns false once the
// remaining rows cannot fit another full cell. Scanners are not safe for
// concurrent use; create one per goroutine.
type Scanner struct {
	cfg     Config
	canvasW int
	canvasH int

	row   int
	col   int
	index int
	cell  Cell
}

// NewScanner creates a Scanner over a canvasW×canvasH canvas.
// The configuration is validated up front; iteration never fails.
func NewScanner(cfg Config, canvasW, canvasH int) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{cfg: cfg, canvasW: canvasW, canvasH: canvasH}, nil
}

// Next advances to the next cell that fits entirely on the canvas, returning
// false when the grid is exhausted. Partial trailing cells are skipped.
func (s *Scanner) Next() bool {
	for {
		x, y := s.cfg.cellOrigin(s.row, s.col)
		if y+s.cfg.CellHeight > s.canvasH {
			return false
		}
		if x+s.cfg.CellWidth > s.canvasW {
			// Row exhausted: columns only move further right.
			s.row++
			s.col = 0
			continue
		}
		s.cell = Cell{
			Row:    s.row,
			Col:    s.col,
			Index:  s.index,
			X:      x,
			Y:      y,
			Width:  s.cfg.CellWidth,
			Height: s.cfg.CellHeight,
		}
		s.col++
		s.index++
		return true
	}
}

// Cell returns the cell produced by the most recent call to Next.
func (s *Scanner) Cell() Cell {
	return s.cell
}

// Reset rewinds the scanner to the first cell.
func (s *Scanner) Reset() {
	s.row = 0
	s.col = 0
	s.index = 0
	s.cell = Cell{}
}

// Cells returns every cell of the grid on a canvasW×canvasH canvas, in
// row-major order. A layout that fits no complete cell returns an empty
// slice, not an error.
func Cells(cfg Config, canvasW, canvasH int) ([]Cell, error) {
	sc, err := NewScanner(cfg, canvasW, canvasH)
	if err != nil {
		return nil, err
	}
	cells := make([]Cell, 0)
	for sc.Next() {
		cells = append(cells, sc.Cell())
	}
	return cells, nil
}

// Count returns the number of cells Cells would produce, without walking
// the sequence.
func Count(cfg Config, canvasW, canvasH int) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	cols := fitCount(canvasW, cfg.OriginX+cfg.PaddingX, cfg.CellWidth, cfg.SpacingX)
	rows := fitCount(canvasH, cfg.OriginY+cfg.PaddingY, cfg.CellHeight, cfg.SpacingY)
	return cols * rows, nil
}

// fitCount returns how many cells of the given size, separated by gap, fit
// within span after skipping lead pixels.
func fitCount(span, lead, cell, gap int) int {
	usable := span - lead
	if usable < cell {
		return 0
	}
	return (usable-cell)/(cell+gap) + 1
}
