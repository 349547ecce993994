package ab1

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/simonhull/abif/internal/binary"
	"github.com/simonhull/abif/internal/types"
)

// ambiguity maps the two-base IUPAC codes to N.
var ambiguity = strings.NewReplacer("K", "N", "Y", "N", "W", "N", "M", "N", "R", "N", "S", "N")

// Config controls a single decode.
type Config struct {
	// AllTags retains every directory entry in the raw tag map instead of
	// only the allow-listed ones. Typed decoding is unaffected.
	AllTags bool

	// Latin1 decodes pString and cString text as ISO-8859-1 into UTF-8.
	Latin1 bool

	// Logger receives debug events; the zero value discards them.
	Logger zerolog.Logger
}

// Decode reads the header and directory from sr and decodes the
// allow-listed records into a Trace.
//
// Path and ID are left for the caller to fill. Any error aborts the
// decode and no Trace is returned.
func Decode(sr *binary.SafeReader, cfg Config) (*types.Trace, error) {
	h, err := ReadHeader(sr)
	if err != nil {
		return nil, err
	}
	if err := CheckDirectory(sr, h); err != nil {
		return nil, err
	}

	log := cfg.Logger
	log.Debug().
		Uint16("version", h.Version).
		Uint32("entries", h.EntryCount).
		Uint32("offset", h.DirectoryOffset).
		Msg("read ABIF header")

	trace := &types.Trace{
		Header:   h,
		RawTags_: make(map[string]types.DirectoryEntry),
	}

	for e, err := range Directory(sr, h) {
		if err != nil {
			return nil, err
		}
		key := e.Key()
		if !cfg.AllTags && !types.IsKnownTag(key) {
			continue
		}
		trace.RawTags_[key] = e
	}

	// Decode from the map so a duplicated key is decoded once, last wins.
	for key, e := range trace.Entries() {
		if !types.IsKnownTag(key) {
			continue
		}
		if err := decodeEntry(sr, e, trace, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}

	return trace, nil
}

// decodeEntry stores the typed value of one allow-listed entry on trace.
func decodeEntry(sr *binary.SafeReader, e types.DirectoryEntry, trace *types.Trace, cfg Config) error {
	off := e.PayloadOffset()
	log := cfg.Logger.With().Str("key", e.Key()).Int64("payload", off).Bool("inline", e.Inline()).Logger()

	switch e.ElementType {
	case types.ElemChar:
		data, err := sr.Bytes(off, int64(e.DataSize), e.Key()+" payload")
		if err != nil {
			return err
		}
		switch e.Name {
		case "PCON":
			trace.Quality = data
			log.Debug().Int("scores", len(data)).Msg("decoded quality")
			return nil
		case "PBAS":
			trace.Sequence = ambiguity.Replace(string(data))
			log.Debug().Int("bases", len(data)).Msg("decoded sequence")
			return nil
		}

	case types.ElemPString:
		// Leading byte is the length prefix.
		text, err := readText(sr, e, off+1, cfg)
		if err != nil {
			return err
		}
		switch e.Name {
		case "SMPL":
			trace.SampleID = text
			log.Debug().Str("sample", text).Msg("decoded sample id")
			return nil
		case "TUBE":
			trace.Well = text
			log.Debug().Str("well", text).Msg("decoded well")
			return nil
		}

	case types.ElemCString:
		// Trailing byte is the terminator.
		text, err := readText(sr, e, off, cfg)
		if err != nil {
			return err
		}
		if e.Name == "HCFG" {
			trace.Instrument = text
			log.Debug().Str("instrument", text).Msg("decoded instrument")
			return nil
		}
	}

	trace.Warnings = append(trace.Warnings, types.Warning{
		Stage:   "decode",
		Message: fmt.Sprintf("%s has element type %s, not decoded", e.Key(), e.ElementType),
		Offset:  e.Start,
	})
	log.Debug().Stringer("type", e.ElementType).Msg("skipped record with unexpected element type")
	return nil
}

// readText reads DataSize-1 bytes of string payload starting at off.
func readText(sr *binary.SafeReader, e types.DirectoryEntry, off int64, cfg Config) (string, error) {
	n := int64(e.DataSize) - 1
	if n < 0 {
		n = 0
	}
	data, err := sr.Bytes(off, n, e.Key()+" text")
	if err != nil {
		return "", err
	}
	if cfg.Latin1 {
		utf, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("%s: latin-1 text: %w", e.Key(), err)
		}
		return string(utf), nil
	}
	return string(data), nil
}
