// Package config loads the TOML configuration of the command-line tools.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/simonhull/abif"
	"github.com/simonhull/abif/internal/logging"
)

// Config holds the settings for converting traces.
type Config struct {
	// Decoding
	AllTags     bool
	Latin1      bool
	Strict      bool
	Concurrency int

	// Export
	OutputDir    string
	LineWidth    int
	FASTQ        bool
	BackupSuffix string

	// Logging
	LogLevel zerolog.Level
}

type fileConfig struct {
	AllTags      bool   `toml:"all_tags"`
	Latin1       bool   `toml:"latin1"`
	Strict       bool   `toml:"strict"`
	Concurrency  int    `toml:"concurrency"`
	OutputDir    string `toml:"output_dir"`
	LineWidth    int    `toml:"line_width"`
	FASTQ        bool   `toml:"fastq"`
	BackupSuffix string `toml:"backup_suffix"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{LogLevel: zerolog.InfoLevel}
}

// Load reads path and applies the keys it defines on top of Default.
//
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("all_tags") {
		cfg.AllTags = raw.AllTags
	}
	if meta.IsDefined("latin1") {
		cfg.Latin1 = raw.Latin1
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("concurrency") {
		cfg.Concurrency = raw.Concurrency
	}
	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("line_width") {
		cfg.LineWidth = raw.LineWidth
	}
	if meta.IsDefined("fastq") {
		cfg.FASTQ = raw.FASTQ
	}
	if meta.IsDefined("backup_suffix") {
		cfg.BackupSuffix = strings.TrimSpace(raw.BackupSuffix)
	}
	if meta.IsDefined("log_level") {
		lvl, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return Config{}, fmt.Errorf("config %s: invalid log_level %q", path, raw.LogLevel)
		}
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that cannot be applied.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.LineWidth < 0 {
		return fmt.Errorf("line_width must not be negative, got %d", c.LineWidth)
	}
	if c.FASTQ && c.LineWidth > 0 {
		return fmt.Errorf("line_width cannot be used with fastq")
	}
	return nil
}

// DecodeOptions converts the decoding settings to abif options.
func (c Config) DecodeOptions(logger zerolog.Logger) []abif.Option {
	opts := []abif.Option{
		abif.WithLogger(logger),
		abif.WithConcurrency(c.Concurrency),
	}
	if c.AllTags {
		opts = append(opts, abif.WithAllTags())
	}
	if c.Latin1 {
		opts = append(opts, abif.WithLatin1Text())
	}
	if c.Strict {
		opts = append(opts, abif.WithStrictParsing())
	}
	return opts
}

// ExportOptions converts the export settings to abif export options.
func (c Config) ExportOptions() []abif.ExportOption {
	var opts []abif.ExportOption
	if c.LineWidth > 0 {
		opts = append(opts, abif.WithLineWidth(c.LineWidth))
	}
	if c.FASTQ {
		opts = append(opts, abif.WithFASTQ())
	}
	if c.BackupSuffix != "" {
		opts = append(opts, abif.WithBackup(c.BackupSuffix))
	}
	return opts
}
