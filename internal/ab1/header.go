// Package ab1 decodes the ABIF container used by Applied Biosystems
// sequencer trace files (.ab1, .fsa).
package ab1

import (
	"fmt"

	"github.com/simonhull/abif/internal/binary"
	"github.com/simonhull/abif/internal/types"
)

// ReadHeader parses the fixed 30-byte header at the start of the input.
//
// A missing "ABIF" signature yields *types.InvalidFormatError before any
// other field is looked at; a correct signature on a shorter input yields
// *types.TruncatedInputError.
func ReadHeader(sr *binary.SafeReader) (types.Header, error) {
	n := min(sr.Size(), int64(len(types.Magic)))
	magic := make([]byte, n)
	if err := sr.ReadAt(magic, 0, "ABIF signature"); err != nil {
		return types.Header{}, err
	}
	if string(magic) != types.Magic {
		return types.Header{}, &types.InvalidFormatError{
			Path:  sr.Path(),
			Magic: magic,
		}
	}
	if err := sr.Check(0, types.HeaderSize, "ABIF header"); err != nil {
		return types.Header{}, err
	}

	r := binary.NewReader(sr, 0)
	r.Skip(int64(len(types.Magic)))
	cr := binary.NewChainReader(r)
	h := types.Header{Magic: types.Magic}
	h.Version = binary.ReadChained[uint16](cr, "header version")
	h.DirName = cr.String(4, "directory tag name")
	h.DirNumber = binary.ReadChained[uint32](cr, "directory tag number")
	h.ElementType = types.ElementType(binary.ReadChained[uint16](cr, "directory element type"))
	h.EntrySize = binary.ReadChained[uint16](cr, "directory entry size")
	h.EntryCount = binary.ReadChained[uint32](cr, "directory entry count")
	h.DataSize = binary.ReadChained[uint32](cr, "directory data size")
	h.DirectoryOffset = binary.ReadChained[uint32](cr, "directory offset")
	if err := cr.Error(); err != nil {
		return types.Header{}, err
	}

	return h, nil
}

// CheckDirectory verifies that the directory table described by h fits
// in the input and that each slot can hold a full entry.
func CheckDirectory(sr *binary.SafeReader, h types.Header) error {
	if h.EntryCount == 0 {
		return nil
	}
	if h.EntrySize < types.EntrySize {
		return &types.InvalidFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("directory entry size %d is smaller than %d", h.EntrySize, types.EntrySize),
		}
	}
	start := int64(h.DirectoryOffset)
	return sr.Check(start, h.DirectoryEnd()-start, "directory table")
}
