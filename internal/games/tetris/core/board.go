// Package core implements the falling-block simulation: the board grid,
// the tetromino shape catalogue and the active piece state machine.
// It is UI-agnostic and deterministic for a given random source.
package core

// Board dimensions. Row 0 is the bottom of the well.
const (
	Width  = 10
	Height = 20
)

// Cell is one board position. Color is meaningful only when Filled is true.
type Cell struct {
	Filled bool
	Color  RGB
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a cell filled with the given color.
func FilledCell(c RGB) Cell {
	return Cell{Filled: true, Color: c}
}

// Board is the Width x Height grid of cells, indexed [y][x].
type Board struct {
	cells [Height][Width]Cell
}

// NewBoard returns a board with every cell empty.
func NewBoard() *Board {
	return &Board{}
}

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Get returns the cell at (x, y). The second result is false for
// coordinates off the board; that is not an error.
func (b *Board) Get(x, y int) (Cell, bool) {
	if !InBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y][x], true
}

// Set writes the cell at (x, y). Writes off the board are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !InBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

// IsFilled reports whether (x, y) is on the board and holds a filled cell.
func (b *Board) IsFilled(x, y int) bool {
	c, ok := b.Get(x, y)
	return ok && c.Filled
}

// FilledCount returns the number of filled cells on the board.
func (b *Board) FilledCount() int {
	n := 0
	for y := range Height {
		for x := range Width {
			if b.cells[y][x].Filled {
				n++
			}
		}
	}
	return n
}

// Rows returns a copy of the grid, row 0 first.
func (b *Board) Rows() [Height][Width]Cell {
	return b.cells
}
