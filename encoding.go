package abif

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/simonhull/abif/internal/types"
)

// Encoding is the outer compression wrapped around an ABIF file.
type Encoding int

const (
	// EncodingRaw is an uncompressed ABIF file.
	EncodingRaw Encoding = iota
	// EncodingGzip is a gzip member (.ab1.gz).
	EncodingGzip
	// EncodingZstd is a Zstandard frame (.ab1.zst).
	EncodingZstd
	// EncodingLZ4 is an LZ4 frame (.ab1.lz4).
	EncodingLZ4
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingGzip:
		return "gzip"
	case EncodingZstd:
		return "zstd"
	case EncodingLZ4:
		return "lz4"
	default:
		return "raw"
	}
}

// Extension returns the conventional file suffix for the encoding.
func (e Encoding) Extension() string {
	switch e {
	case EncodingGzip:
		return ".gz"
	case EncodingZstd:
		return ".zst"
	case EncodingLZ4:
		return ".lz4"
	default:
		return ""
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DetectEncoding determines the compression of data by its magic bytes.
//
// Anything that is not a recognized compression frame is reported as
// EncodingRaw; whether it is a valid ABIF file is decided by Decode.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return EncodingZstd
	case bytes.HasPrefix(data, lz4Magic):
		return EncodingLZ4
	case bytes.HasPrefix(data, gzipMagic):
		return EncodingGzip
	default:
		return EncodingRaw
	}
}

// Decompress unwraps data if it is compressed, returning at most limit bytes.
//
// Raw input is returned unchanged. ErrInputTooLarge is returned when the
// decompressed stream is longer than limit.
func Decompress(data []byte, limit int64) ([]byte, Encoding, error) {
	out, enc, err := decompress(data, limit)
	if err != nil {
		return nil, enc, err
	}
	return out, enc, nil
}

// decompress is Decompress, but on a stream error it also returns the
// bytes decoded before the failure.
func decompress(data []byte, limit int64) ([]byte, Encoding, error) {
	enc := DetectEncoding(data)

	var r io.Reader
	switch enc {
	case EncodingGzip:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, enc, fmt.Errorf("gzip header: %w", err)
		}
		defer gz.Close() //nolint:errcheck // Read-only
		r = gz
	case EncodingZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, enc, fmt.Errorf("zstd header: %w", err)
		}
		defer zr.Close()
		r = zr
	case EncodingLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		if int64(len(data)) > limit {
			return nil, enc, fmt.Errorf("%d bytes: %w", len(data), ErrInputTooLarge)
		}
		return data, enc, nil
	}

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return out, enc, fmt.Errorf("%s stream: %w", enc, err)
	}
	if int64(len(out)) > limit {
		return nil, enc, fmt.Errorf("%s stream larger than %d bytes: %w", enc, limit, ErrInputTooLarge)
	}
	return out, enc, nil
}

// decompressError classifies a failed decompression of raw read from path.
//
// A stream that ends early after yielding the ABIF signature is a
// truncated trace. Anything else behind a compression magic is reported
// as not ABIF.
func decompressError(path string, raw, partial []byte, enc Encoding, err error) error {
	if errors.Is(err, ErrInputTooLarge) {
		return fmt.Errorf("%s: %w", path, err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) && bytes.HasPrefix(partial, []byte(types.Magic)) {
		return &TruncatedInputError{
			Path:   path,
			What:   fmt.Sprintf("%s stream (%v)", enc, err),
			Offset: int64(len(raw)),
			Length: 1,
			Size:   int64(len(raw)),
		}
	}
	return &InvalidFormatError{
		Path:   path,
		Reason: fmt.Sprintf("corrupt %s stream: %v", enc, err),
		Magic:  raw[:min(len(raw), len(types.Magic))],
	}
}
