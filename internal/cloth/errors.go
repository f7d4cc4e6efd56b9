package cloth

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidGrid indicates rows/cols below 1 or non-positive spacing.
	ErrInvalidGrid = errors.New("cloth: invalid grid dimensions")

	// ErrInvalidTimestep indicates a non-positive dt passed to Update.
	ErrInvalidTimestep = errors.New("cloth: timestep must be positive")

	// ErrIndexOutOfRange indicates a (row, col) outside the grid.
	ErrIndexOutOfRange = errors.New("cloth: grid index out of range")

	// ErrUnknownParam indicates a parameter name SetParam does not know.
	ErrUnknownParam = errors.New("cloth: unknown parameter")
)
