// Package abif decodes ABIF trace files produced by Applied Biosystems
// DNA sequencers (.ab1, .abi, .fsa).
//
// An ABIF file is a small header followed by a directory of typed
// records. abif reads the header, walks the directory, and decodes the
// records that matter for sequence analysis into plain Go fields.
//
// # Quick Start
//
// Reading a trace:
//
//	trace, err := abif.Open("sample.ab1")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(trace.SampleID, trace.Well, trace.Instrument)
//	fmt.Println(trace.Sequence)
//	fmt.Println(trace.Quality)
//
// # Decoded Records
//
//   - PBAS2: base calls, with K, Y, W, M, R and S replaced by N
//   - PCON2: one quality score per base
//   - SMPL1: sample name
//   - TUBE1: well position
//   - HCFG3: instrument model
//
// By default only these five entries are kept in the raw tag map.
// WithAllTags keeps every directory entry for inspection without
// changing which fields are decoded:
//
//	trace, err := abif.Open("sample.ab1", abif.WithAllTags())
//	for key, e := range trace.Entries() {
//		fmt.Printf("%s %s %d bytes\n", key, e.ElementType, e.DataSize)
//	}
//
// # Payload Resolution
//
// A directory entry whose data is four bytes or smaller stores the data
// inside the entry; larger data lives at an absolute file offset.
// DirectoryEntry.PayloadOffset hides that distinction.
//
// # Error Handling
//
// Decoding either succeeds completely or returns an error and no Trace:
//
//   - *InvalidFormatError (errors.Is ErrInvalidFormat): no "ABIF" signature
//   - *TruncatedInputError (errors.Is ErrTruncatedInput): the header,
//     directory or a decoded payload reaches past the end of the input
//
// A decoded key whose element type is not the expected one is skipped
// and reported in Trace.Warnings.
//
// # Export
//
// WriteFASTA and Export render a trace as FASTA (or FASTQ):
//
//	path, err := abif.Export(trace, "")  // writes sample.fa
//
// Conversion to other sequence-record types lives in the seqrecord
// subpackage so the core has no such dependency.
//
// # Concurrency
//
// Decoding is synchronous and works on an in-memory copy of the file.
// Independent files can be decoded in parallel with OpenMany:
//
//	traces, err := abif.OpenMany(ctx, paths)
package abif
