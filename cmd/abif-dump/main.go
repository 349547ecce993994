package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/abif"
)

// Prints the header and every directory entry of a trace file, with the
// resolved payload offset and a short preview of text records.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: abif-dump <file.ab1>")
		fmt.Println("       abif-dump -version")
		os.Exit(1)
	}
	if os.Args[1] == "-version" || os.Args[1] == "--version" {
		fmt.Println(abif.GetBuildInfo())
		return
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	data, enc, err := abif.Decompress(raw, abif.DefaultMaxInputSize)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	h, err := abif.ReadHeader(data)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# %s\n", abif.GetBuildInfo())
	fmt.Printf("%s v%d (%s, %d bytes)\n", h.Magic, h.Version, enc, len(data))
	fmt.Printf("directory %s%d: %d entries of %d bytes at offset %d\n\n",
		h.DirName, h.DirNumber, h.EntryCount, h.EntrySize, h.DirectoryOffset)

	for e, err := range abif.Directory(data) {
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		marker := " "
		if abif.IsKnownTag(e.Key()) {
			marker = "*"
		}
		fmt.Printf("%s %-8s %-9s n=%-6d size=%-7d @%-8d %s\n",
			marker, e.Key(), e.ElementType, e.ElementCount, e.DataSize, e.PayloadOffset(), preview(data, e))
	}

	trace, err := abif.Decode(data, os.Args[1])
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nid:         %s\n", trace.ID)
	fmt.Printf("sample:     %s\n", trace.SampleID)
	fmt.Printf("well:       %s\n", trace.Well)
	fmt.Printf("instrument: %s\n", trace.Instrument)
	fmt.Printf("bases:      %d\n", len(trace.Sequence))
	fmt.Printf("checksum:   %016x\n", trace.Checksum())
	for _, w := range trace.Warnings {
		fmt.Printf("warning:    %s\n", w)
	}
}

// preview returns up to 24 printable characters of a text record.
func preview(data []byte, e abif.DirectoryEntry) string {
	var start, end int64
	off := e.PayloadOffset()
	switch e.ElementType {
	case abif.ElemChar:
		start, end = off, off+int64(e.DataSize)
	case abif.ElemPString:
		start, end = off+1, off+int64(e.DataSize)
	case abif.ElemCString:
		start, end = off, off+int64(e.DataSize)-1
	default:
		return ""
	}
	if start < 0 || end > int64(len(data)) || start >= end {
		return ""
	}

	text := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '.'
		}
		return r
	}, string(data[start:end]))
	if len(text) > 24 {
		text = text[:24] + "..."
	}
	return fmt.Sprintf("%q", text)
}
