package abif

// ExportOption configures FASTA/FASTQ export.
//
// Example:
//
//	path, err := abif.Export(trace, "",
//	    abif.WithLineWidth(60),
//	    abif.WithBackup(".bak"),
//	)
type ExportOption func(*exportOptions)

// exportOptions holds configuration for exporting traces.
type exportOptions struct {
	lineWidth    int    // Wrap sequence lines (0 = single line)
	fastq        bool   // Write FASTQ instead of FASTA
	backupSuffix string // Suffix for backup of an existing output
}

// defaultExportOptions returns the default configuration for export.
func defaultExportOptions() *exportOptions {
	return &exportOptions{}
}

// WithLineWidth wraps FASTA sequence lines at n bases.
//
// The default (0) writes the whole sequence on one line. FASTQ output is
// never wrapped.
func WithLineWidth(n int) ExportOption {
	return func(o *exportOptions) {
		if n < 0 {
			n = 0
		}
		o.lineWidth = n
	}
}

// WithFASTQ writes a four-line FASTQ record with Phred+33 qualities
// instead of FASTA.
func WithFASTQ() ExportOption {
	return func(o *exportOptions) {
		o.fastq = true
	}
}

// WithBackup keeps an existing output file under path+suffix.
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) ExportOption {
	return func(o *exportOptions) {
		o.backupSuffix = suffix
	}
}
