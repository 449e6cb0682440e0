package schelling

import "errors"

var (
	// ErrInvalidParameter reports out-of-range or inconsistent inputs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoCapacity reports that relocation ran out of empty cells. With a
	// consistent empty pool this only happens when the grid started with none.
	ErrNoCapacity = errors.New("no empty cell available for relocation")
)
