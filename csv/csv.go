// Package csv implements a streaming, single-pass CSV-to-beads ingestion
// path: one Utf8 tagged sequence per column, packaged into a single
// indexed-beads buffer whose i-th child holds column i's encoded
// sequence.
package csv

import (
	"fmt"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/compress"
	"github.com/arloliu/beads/container"
	"github.com/arloliu/beads/internal/hash"
	"github.com/arloliu/beads/internal/options"
	"github.com/arloliu/beads/sequence"
)

// FirstLineRule controls whether the first CSV row is pushed into the
// column builders or only parsed (to discover the column count) and
// discarded — e.g. a header row.
type FirstLineRule int

const (
	// IncludeFirstLine pushes every row, including the first, into the
	// column builders. This is the default.
	IncludeFirstLine FirstLineRule = iota
	// ExcludeFirstLine parses the first row to discover the column count
	// but does not push its values.
	ExcludeFirstLine
)

type config struct {
	firstLine FirstLineRule
}

// Option configures ToIndexedStringBeads / WriteContainer.
type Option = options.Option[*config]

// WithFirstLineRule sets whether the first CSV row is included or
// treated as a header.
func WithFirstLineRule(rule FirstLineRule) Option {
	return options.NoError(func(c *config) { c.firstLine = rule })
}

// ToIndexedStringBeads parses csvText into one {Utf8} tagged sequence per
// column and packages them into a single indexed-beads buffer. Quoted
// fields, doubled-quote escaping, and both \n and \r\n row separators are
// handled.
func ToIndexedStringBeads(csvText string, opts ...Option) ([]byte, error) {
	cfg := config{firstLine: IncludeFirstLine}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	utf8Set, err := beadtype.NewSet(beadtype.Utf8)
	if err != nil {
		return nil, err
	}

	var builders []*sequence.Builder
	columnIndex := 0
	firstLine := true
	inQuotes := false
	var field []byte

	pushField := func() error {
		for len(builders) <= columnIndex {
			builders = append(builders, sequence.NewBuilder(utf8Set))
		}
		if !firstLine || cfg.firstLine == IncludeFirstLine {
			if !builders[columnIndex].PushString(string(field)) {
				return fmt.Errorf("csv: column %d: value %q does not fit Utf8", columnIndex, field)
			}
		}
		field = field[:0]

		return nil
	}

	data := []byte(csvText)
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '"':
			switch {
			case !inQuotes:
				inQuotes = true
				i++
			case i+1 < len(data) && data[i+1] == '"':
				field = append(field, '"')
				i += 2
			default:
				inQuotes = false
				i++
			}
		case c == ',' && !inQuotes:
			if err := pushField(); err != nil {
				return nil, err
			}
			i++
			columnIndex++
		case c == '\n' && !inQuotes:
			if err := pushField(); err != nil {
				return nil, err
			}
			i++
			columnIndex = 0
			firstLine = false
		case c == '\r' && i+1 < len(data) && data[i+1] == '\n' && !inQuotes:
			if err := pushField(); err != nil {
				return nil, err
			}
			i += 2
			columnIndex = 0
			firstLine = false
		default:
			field = append(field, c)
			i++
		}
	}
	if len(field) > 0 {
		if err := pushField(); err != nil {
			return nil, err
		}
	}

	encoders := make([]container.Encoder, len(builders))
	for idx, b := range builders {
		encoders[idx] = b
	}

	return container.EncodeFromBuilders(encoders), nil
}

// HeaderFingerprint combines the per-column name hashes of a CSV header
// row into one stable identifier, letting a caller cheaply compare two
// files' schemas (e.g. cmd/beads's csv2beads -header output) without comparing
// every column name.
func HeaderFingerprint(columns []string) uint64 {
	var fp uint64 = 14695981039346656037 // FNV-1a offset basis, reused as a mixing seed
	for _, col := range columns {
		fp = (fp^hash.ID(col))*1099511628211 + uint64(len(col))
	}

	return fp
}

// WriteContainer is ToIndexedStringBeads followed by a compression
// envelope. Passing compress.None still frames the buffer (one type byte
// plus a VLQ length), so every file WriteContainer produces can be opened
// the same way regardless of algorithm.
func WriteContainer(csvText string, compression compress.Type, opts ...Option) ([]byte, error) {
	encoded, err := ToIndexedStringBeads(csvText, opts...)
	if err != nil {
		return nil, err
	}

	return compress.Envelope(compression, encoded)
}
