package ab1

import (
	"fmt"
	"iter"

	"github.com/simonhull/abif/internal/binary"
	"github.com/simonhull/abif/internal/types"
)

// Directory returns a lazy sequence over the directory slots described by h.
//
// Slot i is read from h.EntryOffset(i) only when the sequence reaches it.
// On a read failure the error is yielded once and the sequence ends.
func Directory(sr *binary.SafeReader, h types.Header) iter.Seq2[types.DirectoryEntry, error] {
	return func(yield func(types.DirectoryEntry, error) bool) {
		for i := uint32(0); i < h.EntryCount; i++ {
			e, err := ReadEntry(sr, h.EntryOffset(i))
			if err != nil {
				yield(types.DirectoryEntry{}, fmt.Errorf("directory entry %d: %w", i, err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// ReadEntry unpacks the 28-byte directory entry starting at start.
func ReadEntry(sr *binary.SafeReader, start int64) (types.DirectoryEntry, error) {
	if err := sr.Check(start, types.EntrySize, "directory entry"); err != nil {
		return types.DirectoryEntry{}, err
	}

	cr := binary.NewChainReader(binary.NewReader(sr, start))
	e := types.DirectoryEntry{Start: start}
	e.Name = cr.String(4, "tag name")
	e.Number = binary.ReadChained[uint32](cr, "tag number")
	e.ElementType = types.ElementType(binary.ReadChained[uint16](cr, "element type"))
	e.ElementSize = binary.ReadChained[uint16](cr, "element size")
	e.ElementCount = binary.ReadChained[uint32](cr, "element count")
	e.DataSize = binary.ReadChained[uint32](cr, "data size")
	e.DataOffset = binary.ReadChained[uint32](cr, "data offset")
	e.Handle = binary.ReadChained[uint32](cr, "data handle")
	if err := cr.Error(); err != nil {
		return types.DirectoryEntry{}, err
	}

	return e, nil
}
