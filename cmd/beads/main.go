// Command beads is a small demonstration CLI over the beads module: it
// converts a CSV file into an indexed-beads container and inspects an
// encoded tagged-sequence file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arloliu/beads/compress"
	"github.com/arloliu/beads/csv"
	"github.com/arloliu/beads/sequence"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "csv2beads":
		err = runCSV2Beads(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "beads: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "beads: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  beads csv2beads [-compress=zstd|s2|lz4|none] [-header] <in.csv> <out.beads>
  beads inspect <file.beads>`)
}

func parseCompression(name string) (compress.Type, error) {
	switch name {
	case "none":
		return compress.None, nil
	case "zstd":
		return compress.Zstd, nil
	case "s2":
		return compress.S2, nil
	case "lz4":
		return compress.LZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want zstd, s2, lz4, or none)", name)
	}
}

func runCSV2Beads(args []string) error {
	fs := flag.NewFlagSet("csv2beads", flag.ExitOnError)
	compressName := fs.String("compress", "none", "compression algorithm: zstd, s2, lz4, or none")
	header := fs.Bool("header", false, "treat the first CSV row as a header: exclude it from data and print its schema fingerprint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 2 {
		usage()

		return fmt.Errorf("csv2beads: expected <in.csv> <out.beads>")
	}

	compression, err := parseCompression(*compressName)
	if err != nil {
		return err
	}

	inPath, outPath := fs.Arg(0), fs.Arg(1)

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var opts []csv.Option
	if *header {
		opts = append(opts, csv.WithFirstLineRule(csv.ExcludeFirstLine))
	}

	encoded, err := csv.WriteContainer(string(raw), compression, opts...)
	if err != nil {
		return err
	}

	if *header {
		columns := firstLineColumns(string(raw))
		fmt.Printf("schema fingerprint: %#x\n", csv.HeaderFingerprint(columns))
	}

	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d bytes, %s)\n", outPath, len(encoded), compression)

	return nil
}

// firstLineColumns splits a CSV's first line on commas, ignoring quoting —
// good enough for a header-only schema fingerprint, since header names
// are not expected to contain embedded commas.
func firstLineColumns(csvText string) []string {
	end := len(csvText)
	for i, c := range csvText {
		if c == '\n' {
			end = i
			if end > 0 && csvText[end-1] == '\r' {
				end--
			}

			break
		}
	}

	line := csvText[:end]
	if line == "" {
		return nil
	}

	var cols []string
	start := 0
	for i := 0; i <= len(line); i++ {
		if i == len(line) || line[i] == ',' {
			cols = append(cols, line[start:i])
			start = i + 1
		}
	}

	return cols
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		usage()

		return fmt.Errorf("inspect: expected <file.beads>")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	buf := raw
	if opened, err := compress.Open(raw); err == nil {
		buf = opened
	}

	r, err := sequence.NewReaderWithTypes(buf)
	if err != nil {
		return err
	}

	set := r.Set()
	fmt.Printf("elements: %d\n", r.Len())
	fmt.Printf("type set: %v\n", set.Types())
	fmt.Printf("symmetric: %v\n", r.IsSymmetric())

	if !r.IsSymmetric() {
		return nil
	}

	view, err := r.Symmetric()
	if err != nil {
		return err
	}

	it := r.Iterator()
	for i := 0; i < r.Len(); i++ {
		viaIter, ok := it.Next()
		if !ok {
			return fmt.Errorf("inspect: iterator ended early at element %d", i)
		}

		viaGet, err := view.Get(i)
		if err != nil {
			return fmt.Errorf("inspect: element %d: %w", i, err)
		}
		if viaIter.Type() != viaGet.Type() {
			return fmt.Errorf("inspect: element %d: iterator/random-access type mismatch (%s vs %s)", i, viaIter.Type(), viaGet.Type())
		}
	}

	fmt.Println("cross-check: forward iteration matches random access for all elements")

	return nil
}
