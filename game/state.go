package game

import (
	"connect4/utils"
	"fmt"
	"strings"
)

// Board is a 6x7 connect-four grid. Row 0 is the top row, pieces settle at the
// largest free row index of a column.
type Board struct {
	cells [Rows][Cols]Side
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Width() int {
	return len(b.cells[0])
}

func (b *Board) Height() int {
	return len(b.cells)
}

// Cell returns the occupant at the 0-based row and column.
func (b *Board) Cell(row, col int) Side {
	return b.cells[row][col]
}

// Drop places side in the lowest empty cell of the 1-based column. It returns
// false and leaves the board untouched if the column is full or out of range.
func (b *Board) Drop(column int, side Side) bool {
	col := column - 1
	if col < 0 || col >= Cols || !side.isPlayer() {
		return false
	}
	if b.cells[0][col] != Empty {
		return false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = side
			return true
		}
	}
	return false
}

// ValidColumns returns the 0-based columns whose top cell is empty, ascending.
func (b *Board) ValidColumns() []int {
	columns := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.cells[0][col] == Empty {
			columns = append(columns, col)
		}
	}
	return columns
}

// Actions returns the playable 1-based columns, ascending.
func (b *Board) Actions() []int {
	return utils.Map(b.ValidColumns(), func(col int) int { return col + 1 })
}

// HasWon reports whether side holds four consecutive cells in any row, column
// or diagonal. The whole board is scanned on every call.
func (b *Board) HasWon(side Side) bool {
	if !side.isPlayer() {
		return false
	}
	g := &b.cells

	// Horizontal
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols-3; j++ {
			if g[i][j] == side && g[i][j+1] == side && g[i][j+2] == side && g[i][j+3] == side {
				return true
			}
		}
	}
	// Vertical
	for i := 0; i < Rows-3; i++ {
		for j := 0; j < Cols; j++ {
			if g[i][j] == side && g[i+1][j] == side && g[i+2][j] == side && g[i+3][j] == side {
				return true
			}
		}
	}
	// Diagonal down-right
	for i := 0; i < Rows-3; i++ {
		for j := 0; j < Cols-3; j++ {
			if g[i][j] == side && g[i+1][j+1] == side && g[i+2][j+2] == side && g[i+3][j+3] == side {
				return true
			}
		}
	}
	// Diagonal up-right
	for i := 3; i < Rows; i++ {
		for j := 0; j < Cols-3; j++ {
			if g[i][j] == side && g[i-1][j+1] == side && g[i-2][j+2] == side && g[i-3][j+3] == side {
				return true
			}
		}
	}
	return false
}

func (b *Board) IsFull() bool {
	for i := range b.cells {
		for j := range b.cells[i] {
			if b.cells[i][j] == Empty {
				return false
			}
		}
	}
	return true
}

// IsTerminal reports whether either side has won or no move is left.
func (b *Board) IsTerminal() bool {
	return b.HasWon(PlayerA) || b.HasWon(PlayerB) || b.IsFull()
}

// Winner returns the side holding four in a row, or Empty.
func (b *Board) Winner() Side {
	switch {
	case b.HasWon(PlayerA):
		return PlayerA
	case b.HasWon(PlayerB):
		return PlayerB
	default:
		return Empty
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Swapped returns a copy of the board with PlayerA and PlayerB pieces exchanged.
func (b *Board) Swapped() *Board {
	c := b.Clone()
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = c.cells[i][j].Opponent()
		}
	}
	return c
}

// Moves counts the pieces on the board.
func (b *Board) Moves() int {
	n := 0
	for i := range b.cells {
		for j := range b.cells[i] {
			if b.cells[i][j] != Empty {
				n++
			}
		}
	}
	return n
}

// Key returns the canonical snapshot of the board: one digit per cell, row
// by row from the top.
func (b *Board) Key() StateKey {
	var sb strings.Builder
	sb.Grow(Rows * Cols)
	for i := range b.cells {
		for j := range b.cells[i] {
			sb.WriteByte('0' + byte(b.cells[i][j]))
		}
	}
	return StateKey(sb.String())
}

// String renders the board as plain text rows using Side.Symbol.
func (b *Board) String() string {
	var sb strings.Builder
	for i := range b.cells {
		for j := range b.cells[i] {
			sb.WriteByte(b.cells[i][j].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from text rows, top row first. '.' is empty,
// 'X' is PlayerA and 'O' is PlayerB. Boards violating gravity are rejected.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("expected %d rows, got %d", Rows, len(rows))
	}
	b := NewBoard()
	for i, row := range rows {
		if len(row) != Cols {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i, Cols, len(row))
		}
		for j := 0; j < Cols; j++ {
			switch row[j] {
			case '.':
				b.cells[i][j] = Empty
			case 'X':
				b.cells[i][j] = PlayerA
			case 'O':
				b.cells[i][j] = PlayerB
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", i, j, row[j])
			}
		}
	}
	if err := b.checkGravity(); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseKey rebuilds the board a StateKey was taken from.
func ParseKey(key StateKey) (*Board, error) {
	if len(key) != Rows*Cols {
		return nil, fmt.Errorf("state key has %d cells, expected %d", len(key), Rows*Cols)
	}
	b := NewBoard()
	for n := 0; n < len(key); n++ {
		side := Side(key[n] - '0')
		if side != Empty && !side.isPlayer() {
			return nil, fmt.Errorf("state key cell %d: unknown value %q", n, key[n])
		}
		b.cells[n/Cols][n%Cols] = side
	}
	if err := b.checkGravity(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) checkGravity() error {
	for j := 0; j < Cols; j++ {
		for i := 0; i < Rows-1; i++ {
			if b.cells[i][j] != Empty && b.cells[i+1][j] == Empty {
				return fmt.Errorf("column %d: piece at row %d floats over an empty cell", j+1, i)
			}
		}
	}
	return nil
}
