package abif

import (
	"runtime"

	"github.com/rs/zerolog"
)

// DefaultMaxInputSize bounds the bytes read (after decompression) for one trace.
const DefaultMaxInputSize = 256 << 20

// Option configures behavior when decoding trace files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	trace, err := abif.Open("sample.ab1",
//	    abif.WithAllTags(),
//	    abif.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for decoding files.
type openOptions struct {
	allTags        bool           // Keep every directory entry in the tag map
	latin1         bool           // Decode text records as ISO-8859-1
	strictParsing  bool           // Fail on any warning
	ignoreWarnings bool           // Suppress all warnings
	maxInputSize   int64          // Upper bound on decoded input size
	concurrency    int            // OpenMany worker limit
	logger         zerolog.Logger // Debug events
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		maxInputSize: DefaultMaxInputSize,
		concurrency:  runtime.NumCPU(),
		logger:       zerolog.Nop(),
	}
}

func applyOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithAllTags keeps every directory entry in the raw tag map.
//
// By default only the five decoded tag-keys (HCFG3, PBAS2, PCON2, SMPL1,
// TUBE1) are retained. Typed decoding is the same in both modes; the
// extra entries are exposed through Trace.Tag and Trace.Entries only.
func WithAllTags() Option {
	return func(o *openOptions) {
		o.allTags = true
	}
}

// WithLatin1Text decodes sample, well and instrument text as ISO-8859-1.
//
// Without it those fields hold the stored bytes unchanged.
func WithLatin1Text() Option {
	return func(o *openOptions) {
		o.latin1 = true
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default a known record with an unexpected element type is skipped
// and reported in Trace.Warnings.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxInputSize sets the largest accepted input, measured after
// decompression. Values <= 0 restore the default.
func WithMaxInputSize(bytes int64) Option {
	return func(o *openOptions) {
		if bytes <= 0 {
			bytes = DefaultMaxInputSize
		}
		o.maxInputSize = bytes
	}
}

// WithConcurrency limits how many files OpenMany decodes at once.
// Values <= 0 mean runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *openOptions) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.concurrency = n
	}
}

// WithLogger sends decoder debug events to logger.
//
// The library is silent by default.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
//	trace, err := abif.Open("sample.ab1", abif.WithLogger(logger))
func WithLogger(logger zerolog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}
