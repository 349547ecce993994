package abif

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/abif/internal/ab1"
	"github.com/simonhull/abif/internal/binary"
)

// traceExtensions are stripped from a path to form the source id.
var traceExtensions = []string{".ab1", ".abi", ".abif", ".fsa"}

// Open reads an ABIF trace file and decodes it.
//
// The whole file is read into memory once; gzip, zstd and lz4 wrapped
// files are decompressed transparently. Decoding then works on the
// in-memory buffer only.
//
// A file that does not start with "ABIF" fails with *InvalidFormatError,
// and a file whose header or directory points past its end fails with
// *TruncatedInputError. The same holds after decompression: a corrupt
// stream, or one that does not hold an ABIF image, is *InvalidFormatError,
// and a compressed trace cut short is *TruncatedInputError. No partial
// Trace is returned on error.
//
// Example:
//
//	trace, err := abif.Open("sample.ab1")
//	if err != nil {
//		return err
//	}
//	fmt.Printf(">%s %s\n%s\n", trace.ID, trace.SampleID, trace.Sequence)
func Open(path string, opts ...Option) (*Trace, error) {
	options := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.Size() > options.maxInputSize {
		return nil, fmt.Errorf("%s: %d bytes: %w", path, stat.Size(), ErrInputTooLarge)
	}

	raw, err := io.ReadAll(io.LimitReader(f, options.maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	data, enc, err := decompress(raw, options.maxInputSize)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", decompressError(path, raw, data, enc, err))
	}
	if enc != EncodingRaw {
		options.logger.Debug().
			Str("path", path).
			Stringer("encoding", enc).
			Int("compressed", len(raw)).
			Int("size", len(data)).
			Msg("decompressed input")
	}

	return decode(data, path, options)
}

// Decode decodes an in-memory ABIF image.
//
// path is used for the source id and in error messages only; it does not
// need to exist. data must not be compressed (see Decompress).
func Decode(data []byte, path string, opts ...Option) (*Trace, error) {
	return decode(data, path, applyOptions(opts))
}

func decode(data []byte, path string, options *openOptions) (*Trace, error) {
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), path)

	trace, err := ab1.Decode(sr, ab1.Config{
		AllTags: options.allTags,
		Latin1:  options.latin1,
		Logger:  options.logger.With().Str("path", path).Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("decode ABIF: %w", err)
	}

	trace.Path = path
	trace.ID = SourceID(path)
	trace.Checksum_ = xxhash.Sum64(data)

	if options.strictParsing && len(trace.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", trace.Warnings[0].Message)
	}
	if options.ignoreWarnings {
		trace.Warnings = nil
	}

	return trace, nil
}

// OpenContext opens a file with context support for cancellation.
//
// Decoding itself never blocks, so the context is only checked before
// the file is read.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany decodes multiple trace files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines
// (see WithConcurrency). Results are returned in the same order as the
// input paths. If any file fails, the first error is returned and no
// traces are.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	traces, err := abif.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range traces {
//		fmt.Printf("%s: %d bases\n", t.ID, len(t.Sequence))
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*Trace, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	options := applyOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	results := make([]*Trace, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			trace, err := Open(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = trace
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ReadHeader parses the ABIF header at the start of data.
func ReadHeader(data []byte) (Header, error) {
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "")
	return ab1.ReadHeader(sr)
}

// Directory returns a lazy sequence over every directory entry in data.
//
// Header and directory-extent errors are yielded as the only element.
// Entries are not filtered or decoded; see Decode for that.
func Directory(data []byte) iter.Seq2[DirectoryEntry, error] {
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "")
	return func(yield func(DirectoryEntry, error) bool) {
		h, err := ab1.ReadHeader(sr)
		if err == nil {
			err = ab1.CheckDirectory(sr, h)
		}
		if err != nil {
			yield(DirectoryEntry{}, err)
			return
		}
		for e, err := range ab1.Directory(sr, h) {
			if !yield(e, err) {
				return
			}
		}
	}
}

// SourceID derives the trace identifier from its path.
//
// A compression suffix (.gz, .zst, .lz4) is removed first, then a trace
// extension (.ab1, .abi, .abif, .fsa, any case). The directory part is
// kept so exported files land next to their input.
func SourceID(path string) string {
	id := path
	for _, enc := range []Encoding{EncodingGzip, EncodingZstd, EncodingLZ4} {
		if trimmed, ok := trimExt(id, enc.Extension()); ok {
			id = trimmed
			break
		}
	}
	for _, ext := range traceExtensions {
		if trimmed, ok := trimExt(id, ext); ok {
			return trimmed
		}
	}
	return id
}

func trimExt(path, ext string) (string, bool) {
	got := filepath.Ext(path)
	if got == "" || !strings.EqualFold(got, ext) || len(path) == len(got) {
		return path, false
	}
	return strings.TrimSuffix(path, got), true
}
