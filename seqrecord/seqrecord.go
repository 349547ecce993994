// Package seqrecord adapts decoded traces to a generic sequence record.
//
// It is kept out of the abif package so the decoder never depends on a
// downstream record type.
package seqrecord

import (
	"slices"

	"github.com/simonhull/abif"
)

// Record is a named sequence with optional per-base qualities.
type Record struct {
	ID          string
	Name        string
	Description string
	Seq         []byte
	Qual        []byte
}

// New returns a Record over the given id, sequence and qualities.
func New(id string, seq []byte, qual []byte) *Record {
	return &Record{
		ID:   id,
		Seq:  seq,
		Qual: qual,
	}
}

// FromTrace builds a Record from t.
//
// The description carries the sample id and the name is left empty.
// Seq and Qual are copies; the trace is not retained.
func FromTrace(t *abif.Trace) *Record {
	r := New(t.ID, []byte(t.Sequence), slices.Clone(t.Quality))
	r.Description = t.SampleID
	return r
}

// Len returns the number of bases.
func (r *Record) Len() int {
	return len(r.Seq)
}

// HasQuality reports whether every base has a quality score.
func (r *Record) HasQuality() bool {
	return len(r.Qual) > 0 && len(r.Qual) == len(r.Seq)
}
