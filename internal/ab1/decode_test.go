package ab1

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/abif/internal/abiftest"
	"github.com/simonhull/abif/internal/types"
)

func TestDecode_KnownFields(t *testing.T) {
	trace, err := Decode(newReader(abiftest.Default()), Config{})
	require.NoError(t, err)

	assert.Equal(t, "ACGTNNNNNNACGT", trace.Sequence)
	assert.Equal(t, []uint8{30, 40, 25, 12, 60, 60, 61, 55, 20, 10, 40, 40, 33, 38}, trace.Quality)
	assert.Len(t, trace.Quality, len(trace.Sequence))
	assert.Equal(t, "HELLO", trace.SampleID)
	assert.Equal(t, "A1", trace.Well)
	assert.Equal(t, "3730xl", trace.Instrument)
	assert.Equal(t, uint16(abiftest.Version), trace.Version())
	assert.Empty(t, trace.Warnings)
}

func TestDecode_AmbiguityCodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ACGTKYWMRS", "ACGTNNNNNN"},
		{"ACGT", "ACGT"},
		{"NNAC", "NNAC"},
		{"kywmrs", "kywmrs"}, // lowercase is left alone
		{"BDHV-", "BDHV-"},   // three-base codes are left alone
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			data := abiftest.Build(abiftest.Chars("PBAS", 2, tt.in))
			trace, err := Decode(newReader(data), Config{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, trace.Sequence)
		})
	}
}

func TestDecode_QualityBytes(t *testing.T) {
	data := abiftest.Build(abiftest.Bytes("PCON", 2, []byte{30, 40, 25}))
	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 40, 25}, trace.Quality)

	data = abiftest.Build(abiftest.Bytes("PCON", 2, []byte{0, 255, 1, 254, 7}))
	trace, err = Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 255, 1, 254, 7}, trace.Quality)
}

func TestDecode_PString(t *testing.T) {
	data := abiftest.Build(abiftest.Entry{
		Name:   "SMPL",
		Number: 1,
		Type:   types.ElemPString,
		Data:   []byte("\x05HELLO"),
	})
	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "HELLO", trace.SampleID)
}

func TestDecode_CStringDropsTrailingByte(t *testing.T) {
	// Declared size 6 over the bytes "CE3000X": the first five are kept.
	data := abiftest.Build(abiftest.Entry{
		Name:   "HCFG",
		Number: 3,
		Type:   types.ElemCString,
		Data:   []byte("CE3000X"),
	})
	abiftest.PutUint32(data, abiftest.EntryStart(data, 0)+16, 6)

	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "CE300", trace.Instrument)
}

func TestDecode_InlinePayloads(t *testing.T) {
	data := abiftest.Build(
		abiftest.Chars("PBAS", 2, "ACGK"),
		abiftest.Bytes("PCON", 2, []byte{9, 8, 7, 6}),
		abiftest.PString("TUBE", 1, "B12"),
		abiftest.CString("HCFG", 3, "AB"),
	)
	for i := 0; i < 4; i++ {
		start := abiftest.EntryStart(data, i)
		e, err := ReadEntry(newReader(data), start)
		require.NoError(t, err)
		require.True(t, e.Inline())
	}

	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "ACGN", trace.Sequence)
	assert.Equal(t, []uint8{9, 8, 7, 6}, trace.Quality)
	assert.Equal(t, "B12", trace.Well)
	assert.Equal(t, "AB", trace.Instrument)
}

func TestDecode_EmptyStrings(t *testing.T) {
	data := abiftest.Build(
		abiftest.Entry{Name: "SMPL", Number: 1, Type: types.ElemPString},
		abiftest.Entry{Name: "HCFG", Number: 3, Type: types.ElemCString},
	)
	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "", trace.SampleID)
	assert.Equal(t, "", trace.Instrument)
}

func TestDecode_FilteredMode(t *testing.T) {
	trace, err := Decode(newReader(abiftest.Default()), Config{})
	require.NoError(t, err)

	assert.Equal(t, []string{"HCFG3", "PBAS2", "PCON2", "SMPL1", "TUBE1"}, slices.Collect(trace.Keys()))
	_, ok := trace.Tag("DATA9")
	assert.False(t, ok)
}

func TestDecode_UnfilteredMode(t *testing.T) {
	data := abiftest.Build(
		abiftest.Chars("PBAS", 1, "TTTT"), // edited calls: raw only
		abiftest.Chars("PBAS", 2, "ACGTR"),
		abiftest.Short("DATA", 9, 1, 2, 3),
		abiftest.PString("SMPL", 1, "S1"),
	)

	trace, err := Decode(newReader(data), Config{AllTags: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"DATA9", "PBAS1", "PBAS2", "SMPL1"}, slices.Collect(trace.Keys()))
	assert.Equal(t, "ACGTN", trace.Sequence, "only PBAS2 feeds the sequence")
	assert.Equal(t, "S1", trace.SampleID)

	raw, ok := trace.Tag("DATA9")
	require.True(t, ok)
	assert.Equal(t, types.ElemShort, raw.ElementType)
	assert.Equal(t, uint32(3), raw.ElementCount)
}

func TestDecode_UnexpectedTypeWarns(t *testing.T) {
	data := abiftest.Build(
		abiftest.Short("PBAS", 2, 1, 2, 3),
		abiftest.Chars("SMPL", 1, "NOTAPSTRING"),
	)
	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)

	assert.Empty(t, trace.Sequence)
	assert.Empty(t, trace.SampleID)
	require.Len(t, trace.Warnings, 2)
	assert.Contains(t, trace.Warnings[0].Message, "PBAS2")
	assert.Contains(t, trace.Warnings[1].Message, "SMPL1")
}

func TestDecode_DuplicateKeyLastWins(t *testing.T) {
	data := abiftest.Build(
		abiftest.Chars("PBAS", 2, "AAAAA"),
		abiftest.Chars("PBAS", 2, "CCCCC"),
	)
	trace, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "CCCCC", trace.Sequence)
	assert.Equal(t, 1, trace.Len())
}

func TestDecode_TruncatedPayload(t *testing.T) {
	data := abiftest.Build(abiftest.Chars("PBAS", 2, "ACGTACGT"))
	// Point the payload past the end of the buffer.
	abiftest.PutUint32(data, abiftest.EntryStart(data, 0)+20, uint32(len(data)))

	trace, err := Decode(newReader(data), Config{})
	assert.Nil(t, trace)
	assert.True(t, errors.Is(err, types.ErrTruncatedInput), "got %v", err)
}

func TestDecode_TruncatedUnknownPayloadIgnored(t *testing.T) {
	data := abiftest.Build(abiftest.Short("DATA", 9, 1, 2, 3, 4))
	abiftest.PutUint32(data, abiftest.EntryStart(data, 0)+20, 1<<30)

	// Raw entries are never dereferenced, even in unfiltered mode.
	trace, err := Decode(newReader(data), Config{AllTags: true})
	require.NoError(t, err)
	assert.Equal(t, 1, trace.Len())
}

func TestDecode_TruncatedDirectory(t *testing.T) {
	data := abiftest.Default()
	trace, err := Decode(newReader(data[:len(data)-1]), Config{})
	assert.Nil(t, trace)
	assert.True(t, errors.Is(err, types.ErrTruncatedInput))
}

func TestDecode_InvalidSignature(t *testing.T) {
	data := abiftest.Default()
	copy(data, "ABIG")
	trace, err := Decode(newReader(data), Config{})
	assert.Nil(t, trace)
	assert.True(t, errors.Is(err, types.ErrInvalidFormat))
}

func TestDecode_Latin1(t *testing.T) {
	data := abiftest.Build(abiftest.PString("SMPL", 1, "Caf\xe9"))

	raw, err := Decode(newReader(data), Config{})
	require.NoError(t, err)
	assert.Equal(t, "Caf\xe9", raw.SampleID)

	utf, err := Decode(newReader(data), Config{Latin1: true})
	require.NoError(t, err)
	assert.Equal(t, "Café", utf.SampleID)
}

func TestDecode_Deterministic(t *testing.T) {
	data := abiftest.Default()
	a, err := Decode(newReader(data), Config{AllTags: true})
	require.NoError(t, err)
	b, err := Decode(newReader(data), Config{AllTags: true})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Decode(newReader(abiftest.Default()), Config{Logger: logger})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"read ABIF header"`)
	assert.Contains(t, out, `"key":"PBAS2"`)
	assert.Contains(t, out, `"message":"decoded sequence"`)
}
