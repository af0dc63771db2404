// Package output writes VCFv4.2 files for converted genotype data.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fixed column values for converted records. Quality filtering is out of
// scope for this tool, so FILTER is always PASS on emitted records.
const (
	fieldQual   = "."
	fieldFilter = "PASS"
	fieldInfo   = "."
	fieldFormat = "GT"
)

// Record holds the per-marker fields of one VCF data line.
type Record struct {
	Chrom string
	Pos   int64
	ID    string
	Ref   byte
	Alt   byte
}

// HeaderOptions configures the VCF header preamble.
type HeaderOptions struct {
	Source    string // ##source line, e.g. "illumina2vcf 1.0.0"
	Reference string // ##reference line, e.g. "UMD3.1"
}

// Writer writes a VCF file: a fixed header preamble, the #CHROM column
// line naming the declared samples, then one data line per marker.
type Writer struct {
	w       *bufio.Writer
	samples []string
	opts    HeaderOptions
}

// NewWriter creates a VCF writer for the given sample ids. The sample
// order is fixed for the run and every data line must supply genotype
// fields in that order.
func NewWriter(w io.Writer, samples []string, opts HeaderOptions) *Writer {
	return &Writer{
		w:       bufio.NewWriter(w),
		samples: samples,
		opts:    opts,
	}
}

// WriteHeader writes the meta-information lines and the #CHROM header.
func (w *Writer) WriteHeader() error {
	source := w.opts.Source
	if source == "" {
		source = "illumina2vcf"
	}

	lines := []string{
		"##fileformat=VCFv4.2",
		"##source=" + source,
	}
	if w.opts.Reference != "" {
		lines = append(lines, "##reference="+w.opts.Reference)
	}
	lines = append(lines,
		`##FILTER=<ID=PASS,Description="All filters passed">`,
		`##FILTER=<ID=LowQual,Description="Low quality SNP or missing allele information">`,
		`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`,
	)

	for _, line := range lines {
		if _, err := w.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	columns := append([]string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}, w.samples...)
	_, err := w.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// WriteRecord writes one data line. genotypes must hold one rendered GT
// field per declared sample, in declared order; any other count would
// silently misalign sample columns and is rejected.
func (w *Writer) WriteRecord(rec Record, genotypes []string) error {
	if len(genotypes) != len(w.samples) {
		return fmt.Errorf("marker %s: %d genotype fields for %d declared samples",
			rec.ID, len(genotypes), len(w.samples))
	}

	fields := make([]string, 0, 9+len(genotypes))
	fields = append(fields,
		rec.Chrom,
		strconv.FormatInt(rec.Pos, 10),
		rec.ID,
		string(rec.Ref),
		string(rec.Alt),
		fieldQual,
		fieldFilter,
		fieldInfo,
		fieldFormat,
	)
	fields = append(fields, genotypes...)

	_, err := w.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
