// Package sudoku counts all valid completions of a 9x9 sudoku board
// using exhaustive backtracking, either sequentially or on a pool of
// parallel workers.
package sudoku

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// Size is the side length of the classic sudoku board.
const Size = 9

// Blank is the character marking an empty cell in a board string.
const Blank = '.'

// scientificThreshold is the magnitude above which search-space estimates
// are rendered in scientific notation.
var scientificThreshold = big.NewInt(100000)

// Board is a 9x9 sudoku grid. The zero value is an empty board. Cells
// hold values in [0,9], 0 meaning empty. Board tracks its number of
// non-empty cells incrementally, so FixedCells and FillFactor are O(1).
//
// A Board is not safe for concurrent mutation; the parallel solver hands
// every concurrent branch its own Copy.
type Board struct {
	cells [Size][Size]int
	fixed int
}

// New builds a Board from a 9x9 grid of values in [0,9], 0 meaning empty.
// It returns a FormatError if the grid is not 9x9 or contains an
// out-of-range value.
func New(rows [][]int) (*Board, error) {
	if len(rows) != Size {
		return nil, errWrongSize()
	}
	b := &Board{}
	for row, r := range rows {
		if len(r) != Size {
			return nil, errWrongSize()
		}
		for col, val := range r {
			if val < 0 || val > 9 {
				return nil, &FormatError{Reason: fmt.Sprintf("value %d at row %d, column %d is outside [0,9]", val, row, col)}
			}
			b.SetCell(row, col, val)
		}
	}
	return b, nil
}

// Parse builds a Board from an 81-character row-major string of digits
// 1-9 and '.' blanks. It returns a FormatError for any other length or
// character.
func Parse(s string) (*Board, error) {
	if len(s) != Size*Size {
		return nil, errWrongSize()
	}
	b := &Board{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == Blank:
			// already 0
		case c >= '1' && c <= '9':
			b.SetCell(i/Size, i%Size, int(c-'0'))
		default:
			return nil, errBadChar(c, i)
		}
	}
	return b, nil
}

// Load reads a board file and parses it. All whitespace (including
// newlines between rows) is stripped before parsing, so the file may be
// laid out as a single line or as nine rows. A missing file yields a
// NotFoundError; malformed contents yield a FormatError.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading sudoku board file: %w", err)
	}
	return Parse(strings.Join(strings.Fields(string(data)), ""))
}

// Copy returns a fully independent deep copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Cell returns the value at (row, col).
func (b *Board) Cell(row, col int) int {
	return b.cells[row][col]
}

// SetCell places val at (row, col), keeping the fixed-cell count in sync.
// The caller guarantees row, col are in [0,9) and val is in [0,9].
func (b *Board) SetCell(row, col, val int) {
	switch {
	case b.cells[row][col] == 0 && val != 0:
		b.fixed++
	case b.cells[row][col] != 0 && val == 0:
		b.fixed--
	}
	b.cells[row][col] = val
}

// IsEmpty reports whether the cell at (row, col) is empty.
func (b *Board) IsEmpty(row, col int) bool {
	return b.cells[row][col] == 0
}

// FixedCells returns the number of non-empty cells.
func (b *Board) FixedCells() int {
	return b.fixed
}

// EmptyCells returns the number of empty cells.
func (b *Board) EmptyCells() int {
	return Size*Size - b.fixed
}

// FillFactor returns the fixed-cell count as a percentage of the 81
// cells, rounded to the nearest integer.
func (b *Board) FillFactor() int {
	return int(math.Round(float64(b.fixed) * 100 / (Size * Size)))
}

// IsValid reports whether placing val at the empty cell (row, col) would
// break no sudoku rule: no equal value elsewhere in the row, the column,
// or the 3x3 box. The box check inspects only the four cells that the
// row and column scans do not already cover, found by offset arithmetic
// rather than a full box scan.
func (b *Board) IsValid(row, col, val int) bool {
	for i := 0; i < Size; i++ {
		if b.cells[row][i] == val || b.cells[i][col] == val {
			return false
		}
	}

	boxRow := (row / 3) * 3
	boxCol := (col / 3) * 3

	// the two box rows and columns other than row and col
	row1 := (row + 2) % 3
	row2 := (row + 4) % 3
	col1 := (col + 2) % 3
	col2 := (col + 4) % 3

	return b.cells[boxRow+row1][boxCol+col1] != val &&
		b.cells[boxRow+row2][boxCol+col1] != val &&
		b.cells[boxRow+row1][boxCol+col2] != val &&
		b.cells[boxRow+row2][boxCol+col2] != val
}

// Consistent reports whether the board's filled cells respect the sudoku
// rules: no duplicate value in any row, column, or 3x3 box. A board that
// is not consistent has zero solutions.
func (b *Board) Consistent() bool {
	for i := 0; i < Size; i++ {
		var rowSeen, colSeen [Size + 1]bool
		for j := 0; j < Size; j++ {
			if v := b.cells[i][j]; v != 0 {
				if rowSeen[v] {
					return false
				}
				rowSeen[v] = true
			}
			if v := b.cells[j][i]; v != 0 {
				if colSeen[v] {
					return false
				}
				colSeen[v] = true
			}
		}
	}

	for boxRow := 0; boxRow < Size; boxRow += 3 {
		for boxCol := 0; boxCol < Size; boxCol += 3 {
			var seen [Size + 1]bool
			for i := boxRow; i < boxRow+3; i++ {
				for j := boxCol; j < boxCol+3; j++ {
					if v := b.cells[i][j]; v != 0 {
						if seen[v] {
							return false
						}
						seen[v] = true
					}
				}
			}
		}
	}

	return true
}

// SearchSpace returns the product, over every empty cell, of the number
// of values 1-9 that IsValid currently accepts there. It is a generous
// upper bound on the size of the naive backtracking tree, not a solution
// count: an empty board yields 9^81. The board is not mutated.
func (b *Board) SearchSpace() *big.Int {
	space := big.NewInt(1)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if !b.IsEmpty(row, col) {
				continue
			}
			candidates := int64(0)
			for val := 1; val <= Size; val++ {
				if b.IsValid(row, col, val) {
					candidates++
				}
			}
			space.Mul(space, big.NewInt(candidates))
		}
	}
	return space
}

// SearchSpaceScientific renders the search-space estimate in scientific
// notation once it exceeds 100000, and as a plain decimal otherwise.
func (b *Board) SearchSpaceScientific() string {
	space := b.SearchSpace()
	if space.Cmp(scientificThreshold) <= 0 {
		return space.String()
	}
	return formatScientific(space)
}

// formatScientific renders n as a mantissa with up to six fraction
// digits (trailing zeros trimmed) and an E-exponent, e.g. "1.31072E5".
func formatScientific(n *big.Int) string {
	f := new(big.Float).SetPrec(128).SetInt(n)
	mant, expStr, _ := strings.Cut(f.Text('e', 6), "e")
	mant = strings.TrimRight(mant, "0")
	mant = strings.TrimSuffix(mant, ".")
	exp, _ := strconv.Atoi(expStr)
	return fmt.Sprintf("%sE%d", mant, exp)
}

// Flat returns the board as an 81-character row-major string with '.'
// for empty cells. Parse(b.Flat()) reproduces the board.
func (b *Board) Flat() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if v := b.cells[row][col]; v == 0 {
				sb.WriteByte(Blank)
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
	}
	return sb.String()
}

// String renders the board as a human-readable grid with box separators.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row%3 == 0 && row != 0 {
			sb.WriteString("------+-------+------\n")
		}
		for col := 0; col < Size; col++ {
			if col%3 == 0 && col != 0 {
				sb.WriteString("| ")
			}
			if b.cells[row][col] == 0 {
				sb.WriteString(". ")
			} else {
				fmt.Fprintf(&sb, "%d ", b.cells[row][col])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
