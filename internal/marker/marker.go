// Package marker parses Illumina marker manifest tables.
package marker

// Definition is one row of the marker manifest. The row's position in the
// manifest defines the column every sample's genotype code string is
// aligned against, so callers must preserve input order.
type Definition struct {
	ID             int
	Name           string
	Chromosome     string
	Position       int64
	GenTrainScore  string // passed through, not used by the converter
	SNP            string // two-letter allele pair, ILMN strand orientation
	IlmnStrand     string
	CustomerStrand string
	NormID         string // passed through
}
