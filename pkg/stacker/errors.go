package stacker

import "errors"

// The kinds of failure a run can end with. Errors returned from this
// package wrap one of these (check with errors.Is) when the kind is known;
// anything else is an I/O or decoding problem.
var(
	ErrConfig            = errors.New("configuration error")
	ErrInsufficientInput = errors.New("not enough images to process")
	ErrDimensionMismatch = errors.New("image dimensions do not match")
	ErrBounds            = errors.New("shift places image outside the canvas")
)

// ExitCode maps an error from Run into a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:                             return 0
	case errors.Is(err, ErrConfig):              return 2
	case errors.Is(err, ErrInsufficientInput):   return 3
	case errors.Is(err, ErrBounds):              return 4
	}
	return 1
}
