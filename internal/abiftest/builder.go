// Package abiftest assembles synthetic ABIF images for tests.
package abiftest

import (
	"bytes"
	"encoding/binary"

	abinary "github.com/simonhull/abif/internal/binary"
	"github.com/simonhull/abif/internal/types"
)

// Version is the ABIF version written into built headers.
const Version = 101

// headerBlock is the space reserved for the header, as in real files.
const headerBlock = 128

// Entry describes one directory record to build.
type Entry struct {
	Name     string
	Number   uint32
	Type     types.ElementType
	ElemSize uint16 // defaults to 1
	Count    uint32 // defaults to len(Data)/ElemSize
	Handle   uint32
	Data     []byte
}

// Chars builds a char array (type 2) entry.
func Chars(name string, number uint32, s string) Entry {
	return Entry{Name: name, Number: number, Type: types.ElemChar, Data: []byte(s)}
}

// Bytes builds a char array (type 2) entry from raw bytes.
func Bytes(name string, number uint32, b []byte) Entry {
	return Entry{Name: name, Number: number, Type: types.ElemChar, Data: b}
}

// PString builds a length-prefixed string (type 18) entry.
func PString(name string, number uint32, s string) Entry {
	data := append([]byte{byte(len(s))}, s...)
	return Entry{Name: name, Number: number, Type: types.ElemPString, Data: data}
}

// CString builds a NUL-terminated string (type 19) entry.
func CString(name string, number uint32, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Name: name, Number: number, Type: types.ElemCString, Data: data}
}

// Short builds a big-endian int16 array (type 4) entry.
func Short(name string, number uint32, vals ...uint16) Entry {
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(data[2*i:], v)
	}
	return Entry{Name: name, Number: number, Type: types.ElemShort, ElemSize: 2, Data: data}
}

// Build returns an ABIF image holding entries in the given order.
//
// The header occupies the first 128 bytes, payloads larger than four
// bytes follow it, and the directory table comes last.
func Build(entries ...Entry) []byte {
	var payloads bytes.Buffer
	pw := abinary.NewSafeWriter(&payloads)
	offsets := make([]uint32, len(entries))
	for i, e := range entries {
		if len(e.Data) > types.InlineDataMax {
			offsets[i] = uint32(headerBlock + pw.Offset())
			_ = pw.WriteBytes(e.Data)
		}
	}
	dirOffset := uint32(headerBlock + pw.Offset())

	var buf bytes.Buffer
	w := abinary.NewSafeWriter(&buf)

	_ = w.WriteString(types.Magic)
	_ = abinary.Write[uint16](w, Version)
	_ = w.WriteString("tdir")
	_ = abinary.Write[uint32](w, 1)
	_ = abinary.Write[uint16](w, uint16(types.ElemDirEntry))
	_ = abinary.Write[uint16](w, types.EntrySize)
	_ = abinary.Write[uint32](w, uint32(len(entries)))
	_ = abinary.Write[uint32](w, uint32(len(entries)*types.EntrySize))
	_ = abinary.Write[uint32](w, dirOffset)
	_ = w.PadTo(headerBlock)
	_ = w.WriteBytes(payloads.Bytes())

	for i, e := range entries {
		elemSize := e.ElemSize
		if elemSize == 0 {
			elemSize = 1
		}
		count := e.Count
		if count == 0 {
			count = uint32(len(e.Data)) / uint32(elemSize)
		}

		_ = w.WriteFixed([]byte(e.Name), 4)
		_ = abinary.Write[uint32](w, e.Number)
		_ = abinary.Write[uint16](w, uint16(e.Type))
		_ = abinary.Write[uint16](w, elemSize)
		_ = abinary.Write[uint32](w, count)
		_ = abinary.Write[uint32](w, uint32(len(e.Data)))
		if len(e.Data) > types.InlineDataMax {
			_ = abinary.Write[uint32](w, offsets[i])
		} else {
			_ = w.WriteFixed(e.Data, 4)
		}
		_ = abinary.Write[uint32](w, e.Handle)
	}

	return buf.Bytes()
}

// DirectoryOffset reads the directory offset back out of a built image.
func DirectoryOffset(data []byte) int64 {
	return int64(binary.BigEndian.Uint32(data[26:30]))
}

// EntryStart returns the offset of directory slot i in a built image.
func EntryStart(data []byte, i int) int64 {
	return DirectoryOffset(data) + int64(i*types.EntrySize)
}

// PutUint32 overwrites a big-endian uint32 at off.
func PutUint32(data []byte, off int64, v uint32) {
	binary.BigEndian.PutUint32(data[off:], v)
}

// PutUint16 overwrites a big-endian uint16 at off.
func PutUint16(data []byte, off int64, v uint16) {
	binary.BigEndian.PutUint16(data[off:], v)
}

// Default returns an image with all five decoded records plus an
// unrelated raw record.
func Default() []byte {
	return Build(
		CString("HCFG", 3, "3730xl"),
		Chars("PBAS", 2, "ACGTKYWMRSACGT"),
		Bytes("PCON", 2, []byte{30, 40, 25, 12, 60, 60, 61, 55, 20, 10, 40, 40, 33, 38}),
		PString("SMPL", 1, "HELLO"),
		PString("TUBE", 1, "A1"),
		Short("DATA", 9, 1, 2, 3, 4),
	)
}
