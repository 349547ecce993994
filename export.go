package abif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxPhred is the highest score representable in Phred+33 ASCII.
const maxPhred = 93

// ErrNoSequence is returned when exporting a trace without base calls.
var ErrNoSequence = errors.New("trace has no sequence")

// WriteFASTA writes t as a FASTA record:
//
//	>{id} {sampleid}
//	{sequence}
//
// With WithFASTQ the record is written as FASTQ instead, which requires
// one quality score per base.
func WriteFASTA(w io.Writer, t *Trace, opts ...ExportOption) error {
	options := defaultExportOptions()
	for _, opt := range opts {
		opt(options)
	}
	return writeRecord(w, t, options)
}

func writeRecord(w io.Writer, t *Trace, options *exportOptions) error {
	bw := bufio.NewWriter(w)

	if options.fastq {
		if len(t.Quality) != len(t.Sequence) {
			return fmt.Errorf("fastq: %d quality scores for %d bases", len(t.Quality), len(t.Sequence))
		}
		qual := make([]byte, len(t.Quality))
		for i, q := range t.Quality {
			qual[i] = byte(min(q, maxPhred) + 33)
		}
		fmt.Fprintf(bw, "@%s %s\n%s\n+\n%s\n", t.ID, t.SampleID, t.Sequence, qual)
		return bw.Flush()
	}

	fmt.Fprintf(bw, ">%s %s\n", t.ID, t.SampleID)
	seq := t.Sequence
	if options.lineWidth > 0 {
		for len(seq) > options.lineWidth {
			bw.WriteString(seq[:options.lineWidth])
			bw.WriteByte('\n')
			seq = seq[options.lineWidth:]
		}
	}
	bw.WriteString(seq)
	bw.WriteByte('\n')
	return bw.Flush()
}

// Export writes t to output and returns the path written.
//
// An empty output defaults to "{id}.fa" ("{id}.fq" with WithFASTQ).
// This is an atomic operation: the record goes to a temporary file in the
// destination directory first, which is then renamed over the output.
// If any step fails, the destination is left unchanged.
//
// Example:
//
//	path, err := abif.Export(trace, "")
//	// path == "sample.fa" for a trace opened from "sample.ab1"
func Export(t *Trace, output string, opts ...ExportOption) (string, error) {
	options := defaultExportOptions()
	for _, opt := range opts {
		opt(options)
	}

	if t.Sequence == "" {
		return "", fmt.Errorf("export %s: %w", t.ID, ErrNoSequence)
	}

	if output == "" {
		output = t.ID + ".fa"
		if options.fastq {
			output = t.ID + ".fq"
		}
	}

	// Create temp file in same directory as output (for atomic rename)
	outputDir := filepath.Dir(output)
	tempFile, err := os.CreateTemp(outputDir, ".abif-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on any error
	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := tempFile.Chmod(0o644); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	if err := writeRecord(tempFile, t, options); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// Handle backup option (rename existing output before replace)
	if options.backupSuffix != "" {
		if _, err := os.Stat(output); err == nil {
			if err := os.Rename(output, output+options.backupSuffix); err != nil {
				return "", fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, output); err != nil {
		return "", fmt.Errorf("rename temp to output: %w", err)
	}

	success = true
	return output, nil
}
