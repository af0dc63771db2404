// Package sample parses the per-sample genotype table.
package sample

import "fmt"

// Record is one sample row: the sample id plus the compact genotype code
// string, one byte per marker in manifest order.
type Record struct {
	ID        string
	Genotypes string
}

// Table holds the samples of a run. Record order is the order sample ids
// first appear in the input and defines the VCF sample-column order.
type Table struct {
	Records []Record
}

// IDs returns the sample ids in declared order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.Records))
	for i, r := range t.Records {
		ids[i] = r.ID
	}
	return ids
}

// LengthMismatchError reports a sample whose genotype code string cannot
// be aligned against the marker manifest.
type LengthMismatchError struct {
	Sample string
	Got    int
	Want   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("sample %q: genotype code has %d characters, want %d (one per marker)",
		e.Sample, e.Got, e.Want)
}

// Validate checks every record's genotype code length against the marker
// count. Misaligned genotype columns would produce biologically wrong,
// undetectable output, so the first mismatch is returned as an error.
func (t *Table) Validate(markerCount int) error {
	for _, r := range t.Records {
		if len(r.Genotypes) != markerCount {
			return &LengthMismatchError{
				Sample: r.ID,
				Got:    len(r.Genotypes),
				Want:   markerCount,
			}
		}
	}
	return nil
}
