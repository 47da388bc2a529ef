package sudoku

import "math/big"

var bigOne = big.NewInt(1)

// Solve counts every valid completion of the board using sequential
// recursive backtracking. The board is mutated during the search but is
// restored to its input state before Solve returns. A board whose givens
// already violate a sudoku rule has zero solutions.
func (b *Board) Solve() *big.Int {
	count := new(big.Int)
	if !b.Consistent() {
		return count
	}
	b.countFrom(0, 0, count)
	return count
}

// solveFrom counts completions of the subtree rooted at (row, col). The
// parallel solver delegates here once a subtree's search space falls
// below its cutoff.
func (b *Board) solveFrom(row, col int) *big.Int {
	count := new(big.Int)
	b.countFrom(row, col, count)
	return count
}

// countFrom walks cells with rows inner and columns outer: the successor
// of (row, col) is (row+1, col), wrapping to (0, col+1) after the last
// row. Reaching column 9 means every cell is filled, i.e. one solution.
func (b *Board) countFrom(row, col int, count *big.Int) {
	if col == Size {
		count.Add(count, bigOne)
		return
	}

	nextRow, nextCol := nextCell(row, col)

	// fixed cells are skipped, not branched on
	if !b.IsEmpty(row, col) {
		b.countFrom(nextRow, nextCol, count)
		return
	}

	for val := 1; val <= Size; val++ {
		if b.IsValid(row, col, val) {
			b.SetCell(row, col, val)
			b.countFrom(nextRow, nextCol, count)
			b.SetCell(row, col, 0)
		}
	}
}

func nextCell(row, col int) (int, int) {
	if row < Size-1 {
		return row + 1, col
	}
	return 0, col + 1
}
