package abif_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/simonhull/abif"
	"github.com/simonhull/abif/internal/abiftest"
)

// createBenchmarkTrace writes the default test trace with a long read.
func createBenchmarkTrace(b *testing.B, name string) string {
	b.Helper()

	seq := strings.Repeat("ACGTNACGTK", 100)
	qual := make([]byte, len(seq))
	for i := range qual {
		qual[i] = byte(i % 60)
	}
	data := abiftest.Build(
		abiftest.CString("HCFG", 3, "3730xl"),
		abiftest.Chars("PBAS", 2, seq),
		abiftest.Bytes("PCON", 2, qual),
		abiftest.PString("SMPL", 1, "bench"),
		abiftest.PString("TUBE", 1, "H12"),
		abiftest.Short("DATA", 9, make([]uint16, 4096)...),
	)

	path := filepath.Join(b.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.Fatal(err)
	}
	return path
}

// BenchmarkDecode measures decoding of an in-memory image.
func BenchmarkDecode(b *testing.B) {
	data := abiftest.Default()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abif.Decode(data, "bench.ab1"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecodeAllTags measures decoding with every entry retained.
func BenchmarkDecodeAllTags(b *testing.B) {
	data := abiftest.Default()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abif.Decode(data, "bench.ab1", abif.WithAllTags()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkOpen measures opening a single trace file.
func BenchmarkOpen(b *testing.B) {
	path := createBenchmarkTrace(b, "bench.ab1")

	b.ReportAllocs()
	for b.Loop() {
		if _, err := abif.Open(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkOpenMany measures OpenMany scalability.
func BenchmarkOpenMany(b *testing.B) {
	for _, n := range []int{1, 5, 10, 20, 50} {
		b.Run(strconv.Itoa(n)+"_files", func(b *testing.B) {
			paths := make([]string, n)
			for i := range paths {
				paths[i] = createBenchmarkTrace(b, "bench"+strconv.Itoa(i)+".ab1")
			}
			ctx := context.Background()

			b.ReportAllocs()
			for b.Loop() {
				if _, err := abif.OpenMany(ctx, paths); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkDetectEncoding measures compression sniffing.
func BenchmarkDetectEncoding(b *testing.B) {
	data := abiftest.Default()

	b.ReportAllocs()
	for b.Loop() {
		_ = abif.DetectEncoding(data)
	}
}
