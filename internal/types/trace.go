// Package types provides the core data structures for decoded ABIF traces.
//
// This package defines Header, DirectoryEntry and Trace, the values that
// flow from the directory decoder to callers of the public package.
package types

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Allow-listed tag-keys decoded into typed Trace fields.
const (
	KeyInstrument = "HCFG3"
	KeySequence   = "PBAS2"
	KeyQuality    = "PCON2"
	KeySampleID   = "SMPL1"
	KeyWell       = "TUBE1"
)

// KnownTags maps each allow-listed tag-key to the Trace field it fills.
var KnownTags = map[string]string{
	KeyInstrument: "instrument",
	KeySequence:   "sequence",
	KeyQuality:    "quality",
	KeySampleID:   "sampleid",
	KeyWell:       "well",
}

// IsKnownTag reports whether key is one of the allow-listed tag-keys.
func IsKnownTag(key string) bool {
	_, ok := KnownTags[key]
	return ok
}

// Trace is a decoded ABIF trace file.
//
// A Trace is built once by the decoder and is not modified afterwards.
// Empty strings and a nil Quality mean the corresponding record was absent.
type Trace struct {
	RawTags_  map[string]DirectoryEntry //nolint:revive // Underscore indicates internal/unexported semantics
	Checksum_ uint64                    //nolint:revive // Underscore indicates internal/unexported semantics

	// Path of the input as given by the caller
	Path string

	// ID is the source identifier: Path without its trace extension
	ID string

	// Sequence holds the base calls with ambiguity codes mapped to N
	Sequence string

	// SampleID is the SMPL1 sample name
	SampleID string

	// Well is the TUBE1 well position
	Well string

	// Instrument is the HCFG3 instrument model
	Instrument string

	// Quality holds one score per base of Sequence
	Quality []uint8

	// Warnings encountered during decoding (non-fatal issues)
	Warnings []Warning

	// Header is the parsed file header
	Header Header
}

// Version returns the ABIF format version from the header.
func (t *Trace) Version() uint16 {
	return t.Header.Version
}

// Checksum returns the xxhash64 of the decoded ABIF bytes.
//
// Two traces with equal checksums were decoded from identical content.
func (t *Trace) Checksum() uint64 {
	return t.Checksum_
}

// Tag returns the raw directory entry for a tag-key such as "PBAS2".
func (t *Trace) Tag(key string) (DirectoryEntry, bool) {
	e, ok := t.RawTags_[key]
	return e, ok
}

// Tags returns a copy of the raw tag map.
func (t *Trace) Tags() map[string]DirectoryEntry {
	return maps.Clone(t.RawTags_)
}

// Len returns the number of retained directory entries.
func (t *Trace) Len() int {
	return len(t.RawTags_)
}

// Keys returns an iterator over the retained tag-keys in sorted order.
func (t *Trace) Keys() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(t.RawTags_)))
}

// Entries returns an iterator over retained entries in directory order.
func (t *Trace) Entries() iter.Seq2[string, DirectoryEntry] {
	return func(yield func(string, DirectoryEntry) bool) {
		keys := slices.Collect(maps.Keys(t.RawTags_))
		slices.SortFunc(keys, func(a, b string) int {
			return cmp.Compare(t.RawTags_[a].Start, t.RawTags_[b].Start)
		})
		for _, k := range keys {
			if !yield(k, t.RawTags_[k]) {
				return
			}
		}
	}
}
