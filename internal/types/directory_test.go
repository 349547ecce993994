package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectoryEntry_PayloadOffset(t *testing.T) {
	tests := []struct {
		name   string
		entry  DirectoryEntry
		inline bool
		want   int64
	}{
		{
			name:   "inline payload ignores stored offset",
			entry:  DirectoryEntry{DataSize: 4, DataOffset: 0xDEADBEEF, Start: 1000},
			inline: true,
			want:   1020,
		},
		{
			name:   "zero size is inline",
			entry:  DirectoryEntry{DataSize: 0, DataOffset: 77, Start: 128},
			inline: true,
			want:   148,
		},
		{
			name:   "five bytes uses absolute offset",
			entry:  DirectoryEntry{DataSize: 5, DataOffset: 512, Start: 1000},
			inline: false,
			want:   512,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inline, tt.entry.Inline())
			assert.Equal(t, tt.want, tt.entry.PayloadOffset())
		})
	}
}

func TestDirectoryEntry_Key(t *testing.T) {
	e := DirectoryEntry{Name: "PBAS", Number: 2}
	assert.Equal(t, "PBAS2", e.Key())
	assert.Equal(t, "DATA12", TagKey("DATA", 12))
}

func TestHeader_EntryOffset(t *testing.T) {
	h := Header{EntrySize: 28, EntryCount: 3, DirectoryOffset: 200}

	assert.Equal(t, int64(200), h.EntryOffset(0))
	assert.Equal(t, int64(228), h.EntryOffset(1))
	assert.Equal(t, int64(256), h.EntryOffset(2))
	assert.Equal(t, int64(284), h.DirectoryEnd())
}

func TestElementType_String(t *testing.T) {
	assert.Equal(t, "char", ElemChar.String())
	assert.Equal(t, "pString", ElemPString.String())
	assert.Equal(t, "cString", ElemCString.String())
	assert.Equal(t, "user(1024)", ElementType(1024).String())
	assert.Equal(t, "99", ElementType(99).String())
}

func TestDirectoryEntry_String(t *testing.T) {
	e := DirectoryEntry{Name: "SMPL", Number: 1, ElementType: ElemPString, ElementSize: 1, ElementCount: 6, DataSize: 6, DataOffset: 300}
	assert.Equal(t, "SMPL1 type=pString elemsize=1 count=6 size=6 payload@300", e.String())
}
