// Command abif2fasta converts ABIF trace files to FASTA or FASTQ.
//
// Usage:
//
//	abif2fasta [-config abif.toml] [-o dir] [-fastq] [-width n] <trace files...>
//	abif2fasta -version
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/simonhull/abif"
	"github.com/simonhull/abif/internal/config"
	"github.com/simonhull/abif/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "abif2fasta: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("abif2fasta", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML config file")
	outDir := fs.String("o", "", "output directory (default: next to each input)")
	fastq := fs.Bool("fastq", false, "write FASTQ instead of FASTA")
	width := fs.Int("width", 0, "wrap FASTA sequence lines (0 = no wrapping)")
	allTags := fs.Bool("all-tags", false, "keep every directory entry (debug logging)")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn, error or off")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *version {
		_, err := fmt.Fprintln(stdout, abif.GetBuildInfo())
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags given on the command line win over the config file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.OutputDir = *outDir
		case "fastq":
			cfg.FASTQ = *fastq
		case "width":
			cfg.LineWidth = *width
		case "all-tags":
			cfg.AllTags = *allTags
		case "log-level":
			lvl, ok := logging.ParseLevel(*logLevel)
			if !ok {
				flagErr = fmt.Errorf("invalid -log-level %q", *logLevel)
			}
			cfg.LogLevel = lvl
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Level precedence: -log-level, then ABIF_LOG_LEVEL, then the config file.
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logging.ApplyEnvOverrides(&logCfg)
	if *logLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	logger := logging.New("abif2fasta", os.Stderr, logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return convert(ctx, logger, cfg, fs.Args())
}

// convert decodes paths and writes one record per distinct trace.
func convert(ctx context.Context, logger zerolog.Logger, cfg config.Config, paths []string) error {
	traces, err := abif.OpenMany(ctx, paths, cfg.DecodeOptions(logger)...)
	if err != nil {
		return err
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	type job struct {
		trace  *abif.Trace
		output string
	}

	// Plan every output before writing any, so a name clash leaves
	// nothing half converted.
	jobs := make([]job, 0, len(traces))
	seen := make(map[uint64]string, len(traces))
	outputs := make(map[string]string, len(traces))
	for _, trace := range traces {
		if first, dup := seen[trace.Checksum()]; dup {
			logger.Warn().Str("path", trace.Path).Str("same_as", first).Msg("skipping duplicate trace")
			continue
		}
		seen[trace.Checksum()] = trace.Path

		out := outputPath(cfg, trace)
		if other, clash := outputs[out]; clash {
			return fmt.Errorf("%s and %s would both be written to %s", other, trace.Path, out)
		}
		outputs[out] = trace.Path
		jobs = append(jobs, job{trace: trace, output: out})
	}

	exportOpts := cfg.ExportOptions()
	for _, j := range jobs {
		trace := j.trace
		for _, w := range trace.Warnings {
			logger.Warn().Str("path", trace.Path).Msg(w.String())
		}

		out, err := abif.Export(trace, j.output, exportOpts...)
		if err != nil {
			return fmt.Errorf("%s: %w", trace.Path, err)
		}
		logger.Info().
			Str("path", trace.Path).
			Str("output", out).
			Str("sample", trace.SampleID).
			Int("bases", len(trace.Sequence)).
			Msg("exported trace")
	}
	return nil
}

// outputPath places the record next to its input, or in the configured
// output directory under the input's base name.
func outputPath(cfg config.Config, trace *abif.Trace) string {
	ext := ".fa"
	if cfg.FASTQ {
		ext = ".fq"
	}
	if cfg.OutputDir == "" {
		return trace.ID + ext
	}
	return filepath.Join(cfg.OutputDir, filepath.Base(trace.ID)+ext)
}
