package sudoku

import (
	"math/big"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultCutoff is the search-space size below which the parallel solver
// stops forking and brute-forces the remaining subtree sequentially.
// Below it, the cost of scheduling a task outweighs the work it carries.
var DefaultCutoff = new(big.Int).Exp(big.NewInt(10), big.NewInt(25), nil)

// Config tunes the parallel solver.
type Config struct {
	// Workers bounds the number of concurrently running search tasks.
	// Defaults to runtime.NumCPU().
	Workers int

	// Cutoff is the search-space size below which a task delegates to
	// the sequential solver instead of forking. Defaults to
	// DefaultCutoff. Lower values fork more aggressively.
	Cutoff *big.Int
}

// ParallelSolver counts sudoku solutions by forking independent branches
// of the backtracking tree onto a bounded pool of workers. Every forked
// branch owns a deep copy of the board, so tasks share no mutable state
// and the count is deterministic regardless of scheduling.
type ParallelSolver struct {
	workers int
	cutoff  *big.Int
}

// NewParallelSolver creates a parallel solver, applying defaults for
// any zero Config field.
func NewParallelSolver(cfg Config) *ParallelSolver {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Cutoff == nil {
		cfg.Cutoff = DefaultCutoff
	}
	return &ParallelSolver{workers: cfg.Workers, cutoff: cfg.Cutoff}
}

// Solve counts every valid completion of the board. It blocks until the
// whole search tree has been exhausted and returns the same count as the
// sequential Board.Solve. The board is mutated only transiently by
// sequential subtree searches and is restored before Solve returns.
func (s *ParallelSolver) Solve(b *Board) *big.Int {
	if !b.Consistent() {
		return new(big.Int)
	}

	log.Debug().
		Int("workers", s.workers).
		Str("cutoff", s.cutoff.String()).
		Str("searchSpace", b.SearchSpaceScientific()).
		Msg("starting parallel solve")

	// Semaphore tokens bound in-flight tasks to the worker count; the Go
	// scheduler work-steals the goroutines across threads.
	sem := make(chan struct{}, s.workers)
	return s.run(task{board: b, row: 0, col: 0}, sem)
}

// task is one unit of parallel decomposition: an exclusively owned board
// plus the cursor where its scan resumes.
type task struct {
	board    *Board
	row, col int
}

// run executes a search task, forking subtrees while the remaining
// search space is above the cutoff. A task that cannot obtain a worker
// token executes its children inline, so a saturated pool degrades to
// sequential recursion instead of deadlocking.
func (s *ParallelSolver) run(t task, sem chan struct{}) *big.Int {
	if t.col == Size {
		return big.NewInt(1)
	}

	if t.board.SearchSpace().Cmp(s.cutoff) < 0 {
		return t.board.solveFrom(t.row, t.col)
	}

	nextRow, nextCol := nextCell(t.row, t.col)

	// A fixed cell has exactly one successor. A one-way fork is never
	// scheduled; the child continues inline with the same board.
	if !t.board.IsEmpty(t.row, t.col) {
		return s.run(task{board: t.board, row: nextRow, col: nextCol}, sem)
	}

	// One child per valid candidate, each owning its own deep copy. The
	// parent's board is not handed to any child and is left unmodified.
	var children []task
	for val := 1; val <= Size; val++ {
		if t.board.IsValid(t.row, t.col, val) {
			child := t.board.Copy()
			child.SetCell(t.row, t.col, val)
			children = append(children, task{board: child, row: nextRow, col: nextCol})
		}
	}
	if len(children) == 0 {
		return new(big.Int)
	}

	// Fork all children but the last; the calling goroutine always does
	// useful work instead of only blocking on joins.
	forked := children[:len(children)-1]
	results := make([]*big.Int, len(forked))

	var g errgroup.Group
	for i, child := range forked {
		i, child := i, child // per-iteration copies; required under go <1.22
		select {
		case sem <- struct{}{}:
			g.Go(func() error {
				defer func() { <-sem }()
				results[i] = s.run(child, sem)
				return nil
			})
		default:
			results[i] = s.run(child, sem)
		}
	}

	total := s.run(children[len(children)-1], sem)

	_ = g.Wait() // tasks never return an error
	for _, r := range results {
		total.Add(total, r)
	}
	return total
}
