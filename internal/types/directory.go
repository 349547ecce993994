package types

import (
	"fmt"
	"strconv"
)

// Fixed layout sizes of the ABIF container.
const (
	// HeaderSize is the number of header bytes consumed by the decoder.
	HeaderSize = 30

	// EntrySize is the on-disk size of one directory entry.
	EntrySize = 28

	// InlineDataOffset is the position of the data/offset field within an entry.
	InlineDataOffset = 20

	// InlineDataMax is the largest payload stored inside the entry itself.
	InlineDataMax = 4
)

// Magic is the 4-byte signature every ABIF file starts with.
const Magic = "ABIF"

// ElementType is the element type code of a directory entry.
type ElementType uint16

const (
	ElemByte     ElementType = 1  // byte
	ElemChar     ElementType = 2  // char
	ElemWord     ElementType = 3  // word
	ElemShort    ElementType = 4  // short
	ElemLong     ElementType = 5  // long
	ElemFloat    ElementType = 7  // float
	ElemDouble   ElementType = 8  // double
	ElemDate     ElementType = 10 // date
	ElemTime     ElementType = 11 // time
	ElemThumb    ElementType = 12 // thumb
	ElemBool     ElementType = 13 // bool
	ElemPString  ElementType = 18 // pString
	ElemCString  ElementType = 19 // cString
	ElemDirEntry ElementType = 1023
)

// String returns the ABIF name of the element type, or its numeric code.
func (t ElementType) String() string {
	switch t {
	case ElemByte:
		return "byte"
	case ElemChar:
		return "char"
	case ElemWord:
		return "word"
	case ElemShort:
		return "short"
	case ElemLong:
		return "long"
	case ElemFloat:
		return "float"
	case ElemDouble:
		return "double"
	case ElemDate:
		return "date"
	case ElemTime:
		return "time"
	case ElemThumb:
		return "thumb"
	case ElemBool:
		return "bool"
	case ElemPString:
		return "pString"
	case ElemCString:
		return "cString"
	case ElemDirEntry:
		return "dirEntry"
	default:
		if t >= 1024 {
			return "user(" + strconv.Itoa(int(t)) + ")"
		}
		return strconv.Itoa(int(t))
	}
}

// Header is the fixed-size ABIF file header.
//
// The header embeds a directory entry (conventionally "tdir" 1) that
// describes the directory table itself.
type Header struct {
	Magic   string
	Version uint16

	// DirName and DirNumber identify the embedded directory record.
	DirName   string
	DirNumber uint32

	// ElementType of the directory record (1023 in real files).
	ElementType ElementType

	// EntrySize is the size in bytes of one directory slot.
	EntrySize uint16

	// EntryCount is the number of directory slots.
	EntryCount uint32

	// DataSize is the declared size of the directory table.
	DataSize uint32

	// DirectoryOffset is the absolute offset of slot 0.
	DirectoryOffset uint32
}

// EntryOffset returns the start offset of directory slot i.
func (h Header) EntryOffset(i uint32) int64 {
	return int64(h.DirectoryOffset) + int64(i)*int64(h.EntrySize)
}

// DirectoryEnd returns the offset one past the last directory slot.
func (h Header) DirectoryEnd() int64 {
	return h.EntryOffset(h.EntryCount)
}

// DirectoryEntry is one 28-byte record of the ABIF directory.
//
// DataOffset has a dual meaning: when DataSize is at most 4 it holds the
// payload bytes themselves, otherwise it is an absolute file offset. Use
// PayloadOffset rather than DataOffset to locate the data.
type DirectoryEntry struct {
	Name         string
	Number       uint32
	ElementType  ElementType
	ElementSize  uint16
	ElementCount uint32
	DataSize     uint32
	DataOffset   uint32
	Handle       uint32

	// Start is the entry's own offset in the file (not part of the layout).
	Start int64
}

// TagKey builds the key used for the tag map, e.g. "PBAS2".
func TagKey(name string, number uint32) string {
	return name + strconv.FormatUint(uint64(number), 10)
}

// Key returns the entry's tag-key (name followed by number).
func (e DirectoryEntry) Key() string {
	return TagKey(e.Name, e.Number)
}

// Inline reports whether the payload is stored inside the entry.
func (e DirectoryEntry) Inline() bool {
	return e.DataSize <= InlineDataMax
}

// PayloadOffset returns the absolute offset of the entry's data.
func (e DirectoryEntry) PayloadOffset() int64 {
	if e.Inline() {
		return e.Start + InlineDataOffset
	}
	return int64(e.DataOffset)
}

// String returns a one-line description of the entry.
func (e DirectoryEntry) String() string {
	return fmt.Sprintf("%s type=%s elemsize=%d count=%d size=%d payload@%d",
		e.Key(), e.ElementType, e.ElementSize, e.ElementCount, e.DataSize, e.PayloadOffset())
}
