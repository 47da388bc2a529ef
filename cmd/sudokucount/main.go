// Command sudokucount counts all valid completions of a 9x9 sudoku board
// file, first sequentially and then on a parallel worker pool, and
// reports the counts and timings of both runs.
//
// The board file holds 81 cells in row-major order, each a digit 1-9 or
// '.' for an empty cell; whitespace and newlines are ignored.
package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bizio/sudokucount/sudoku"
)

var (
	workers    int
	cutoffFlag string
	debug      bool
	profileCPU bool
)

func main() {
	cmd := &cobra.Command{
		Use:           "sudokucount <board file>",
		Short:         "Count all solutions of a 9x9 sudoku board",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel worker count (defaults to the number of CPUs)")
	cmd.Flags().StringVar(&cutoffFlag, "cutoff", "", "sequential cutoff for the parallel solver, e.g. 1e25")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&profileCPU, "profile", false, "write a CPU profile to the current directory")

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := cmd.Execute(); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if profileCPU {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	cutoff, err := parseCutoff(cutoffFlag)
	if err != nil {
		return err
	}

	board, err := sudoku.Load(args[0])
	if err != nil {
		return err
	}

	benchmark(board, sudoku.Config{Workers: workers, Cutoff: cutoff})
	return nil
}

// parseCutoff reads a cutoff flag value as a plain decimal or in
// scientific notation. An empty flag keeps the solver default.
func parseCutoff(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	f, ok := new(big.Float).SetString(s)
	if !ok || f.Sign() < 0 {
		return nil, fmt.Errorf("invalid cutoff %q: must be a non-negative number", s)
	}
	cutoff, _ := f.Int(nil)
	return cutoff, nil
}

func benchmark(board *sudoku.Board, cfg sudoku.Config) {
	fmt.Printf("Empty cells: %d\n", board.EmptyCells())
	fmt.Printf("Fill ratio: %d%%\n", board.FillFactor())
	fmt.Printf("Search space: %s\n\n", board.SearchSpaceScientific())

	fmt.Println("Solving sequentially...")
	begin := time.Now()
	seqCount := board.Solve()
	seqTime := time.Since(begin)
	fmt.Printf("Done in: %s\n", formatDuration(seqTime))
	fmt.Printf("Solutions: %s\n\n", seqCount)

	fmt.Println("Solving in parallel...")
	solver := sudoku.NewParallelSolver(cfg)
	begin = time.Now()
	parCount := solver.Solve(board.Copy())
	parTime := time.Since(begin)
	fmt.Printf("Done in: %s\n", formatDuration(parTime))
	fmt.Printf("Solutions: %s\n\n", parCount)

	fmt.Printf("Speedup: %f\n", float64(seqTime)/float64(parTime))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dm %ds %dms",
		int64(d.Minutes()),
		int64(d.Seconds())%60,
		d.Milliseconds()%1000)
}
