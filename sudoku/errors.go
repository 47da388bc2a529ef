package sudoku

import "fmt"

// FormatError reports a board source that does not describe a valid 9x9
// sudoku grid. Reason distinguishes wrong dimensions from an invalid
// character.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid sudoku board: " + e.Reason
}

// NotFoundError reports a board file path that could not be resolved to a
// readable source.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sudoku board file %q not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func errWrongSize() *FormatError {
	return &FormatError{Reason: fmt.Sprintf("the board must be %dx%d", Size, Size)}
}

func errBadChar(c byte, pos int) *FormatError {
	return &FormatError{Reason: fmt.Sprintf("character %q at position %d: cells must be digits 1-9 or %q for blanks", c, pos, Blank)}
}
