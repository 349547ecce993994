package abif

import (
	"errors"

	"github.com/simonhull/abif/internal/types"
)

// InvalidFormatError is an alias to types.InvalidFormatError.
// Returned when the input does not start with the "ABIF" signature.
type InvalidFormatError = types.InvalidFormatError

// TruncatedInputError is an alias to types.TruncatedInputError.
// Returned when a declared offset or size reaches past the end of input.
type TruncatedInputError = types.TruncatedInputError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Sentinels for errors.Is.
var (
	ErrInvalidFormat  = types.ErrInvalidFormat
	ErrTruncatedInput = types.ErrTruncatedInput

	// ErrInputTooLarge is returned when an input exceeds the configured maximum size.
	ErrInputTooLarge = errors.New("input exceeds maximum size")
)
