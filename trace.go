package abif

import (
	"github.com/simonhull/abif/internal/types"
)

// Trace is an alias to types.Trace.
// Re-exporting from internal/types to maintain public API.
type Trace = types.Trace

// Header is an alias to types.Header.
type Header = types.Header

// DirectoryEntry is an alias to types.DirectoryEntry.
type DirectoryEntry = types.DirectoryEntry

// ElementType is an alias to types.ElementType.
type ElementType = types.ElementType

// Re-export element type codes.
const (
	ElemByte     = types.ElemByte
	ElemChar     = types.ElemChar
	ElemWord     = types.ElemWord
	ElemShort    = types.ElemShort
	ElemLong     = types.ElemLong
	ElemFloat    = types.ElemFloat
	ElemDouble   = types.ElemDouble
	ElemDate     = types.ElemDate
	ElemTime     = types.ElemTime
	ElemThumb    = types.ElemThumb
	ElemBool     = types.ElemBool
	ElemPString  = types.ElemPString
	ElemCString  = types.ElemCString
	ElemDirEntry = types.ElemDirEntry
)

// Re-export the decoded tag-keys.
const (
	KeyInstrument = types.KeyInstrument
	KeySequence   = types.KeySequence
	KeyQuality    = types.KeyQuality
	KeySampleID   = types.KeySampleID
	KeyWell       = types.KeyWell
)

// IsKnownTag reports whether key is decoded into a typed Trace field.
func IsKnownTag(key string) bool {
	return types.IsKnownTag(key)
}
