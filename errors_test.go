package abif

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/abif/internal/abiftest"
)

func TestTruncatedInputError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TruncatedInputError
		contains []string
	}{
		{
			name: "offset beyond file size",
			err: &TruncatedInputError{
				Path:   "run.ab1",
				Offset: 1000,
				Length: 28,
				Size:   500,
				What:   "directory",
			},
			contains: []string{"run.ab1", "offset 1000 out of bounds", "file size: 500", "directory"},
		},
		{
			name: "read would exceed file size",
			err: &TruncatedInputError{
				Path:   "run.ab1",
				Offset: 100,
				Length: 50,
				Size:   120,
				What:   "PBAS2 payload",
			},
			contains: []string{"run.ab1", "read of 50 bytes", "offset 100", "exceed file size 120", "PBAS2 payload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestDecodeErrors_Is(t *testing.T) {
	short := abiftest.Default()[:20]
	notABIF := []byte("RIFF0000WAVEfmt ")

	_, err := Decode(short, "short.ab1")
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("truncated header: got %v, want ErrTruncatedInput", err)
	}
	var te *TruncatedInputError
	if !errors.As(err, &te) || te.Path != "short.ab1" {
		t.Errorf("errors.As(*TruncatedInputError) = %v, path %q", err, te)
	}

	_, err = Decode(notABIF, "song.wav")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("bad signature: got %v, want ErrInvalidFormat", err)
	}
	if errors.Is(err, ErrTruncatedInput) {
		t.Errorf("bad signature must not match ErrTruncatedInput")
	}
}
