package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrInvalidFormat matches any *InvalidFormatError.
	ErrInvalidFormat = errors.New("invalid ABIF format")

	// ErrTruncatedInput matches any *TruncatedInputError.
	ErrTruncatedInput = errors.New("truncated ABIF input")
)

// InvalidFormatError is returned when the input is not an ABIF file or its
// header describes an impossible directory layout.
type InvalidFormatError struct {
	Path   string
	Reason string
	Magic  []byte
}

func (e *InvalidFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: invalid ABIF format: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: invalid ABIF format: signature %q is not \"ABIF\"", e.Path, e.Magic)
}

// Is reports whether target is ErrInvalidFormat.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// TruncatedInputError is returned when a declared offset or size reaches
// beyond the end of the input.
type TruncatedInputError struct {
	Path   string
	What   string
	Offset int64
	Length int64
	Size   int64
}

func (e *TruncatedInputError) Error() string {
	if e.Offset < 0 || (e.Offset >= e.Size && e.Length > 0) {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// Is reports whether target is ErrTruncatedInput.
func (e *TruncatedInputError) Is(target error) bool {
	return target == ErrTruncatedInput
}

// Warning represents a non-fatal issue encountered during decoding.
//
// Warnings are raised for allow-listed records that could not be turned
// into a typed field, for example a PBAS2 record whose element type is
// not a character array. Unknown tags never produce warnings.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "directory", "decode"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
