package abiftest

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Layout(t *testing.T) {
	data := Build(
		Chars("PBAS", 2, "ACGTACGT"),
		Chars("PBAS", 1, "ACG"),
	)

	require.Equal(t, "ABIF", string(data[:4]))
	assert.Equal(t, uint16(Version), binary.BigEndian.Uint16(data[4:6]))
	assert.Equal(t, uint16(28), binary.BigEndian.Uint16(data[16:18]))
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(data[18:22]))

	// One 8-byte payload after the header block, then two entries
	dir := DirectoryOffset(data)
	assert.Equal(t, int64(136), dir)
	assert.Len(t, data, 136+2*28)

	first := data[EntryStart(data, 0):]
	assert.Equal(t, "PBAS", string(first[:4]))
	assert.Equal(t, uint32(128), binary.BigEndian.Uint32(first[20:24]))
	assert.Equal(t, "ACGTACGT", string(data[128:136]))

	// Short payload stored inline, left aligned
	second := data[EntryStart(data, 1):]
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(second[16:20]))
	assert.Equal(t, []byte{'A', 'C', 'G', 0}, second[20:24])
}

func TestHelpers_Payloads(t *testing.T) {
	assert.Equal(t, []byte("\x05HELLO"), PString("SMPL", 1, "HELLO").Data)
	assert.Equal(t, []byte("3730\x00"), CString("HCFG", 3, "3730").Data)

	s := Short("DATA", 1, 0x0102, 0x0304)
	assert.Equal(t, []byte{1, 2, 3, 4}, s.Data)
	assert.Equal(t, uint16(2), s.ElemSize)
}
