package convert

import (
	"go.uber.org/zap"

	"github.com/rmozafari/illumina2vcf/internal/marker"
	"github.com/rmozafari/illumina2vcf/internal/strand"
)

// ResolvedMarker is a manifest row with its allele pair expressed on the
// customer strand. Ref and Alt preserve the manifest pair's positional
// order after strand reconciliation.
type ResolvedMarker struct {
	Chrom string
	Pos   int64
	Name  string
	Ref   byte
	Alt   byte
}

// SkippedMarker records a manifest row excluded from the output together
// with the reason, so bad manifest data can be diagnosed after the run.
type SkippedMarker struct {
	Name   string
	Reason error
}

// Index is the ordered set of resolved markers for a run.
//
// Columns maps each resolved marker back to its column in every sample's
// genotype code string. Skipped and chromosome-filtered manifest rows
// still occupy a column there, so the mapping cannot be recovered from
// Markers alone.
type Index struct {
	Markers  []ResolvedMarker
	Columns  []int
	Skipped  []SkippedMarker
	Filtered int
}

// BuildIndex resolves the ordered manifest rows into an Index. The
// chromosome filter, when set, is applied before resolution. Rows whose
// strand or allele data is malformed are excluded and recorded; they never
// abort the run.
func BuildIndex(defs []marker.Definition, opts Options, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}

	chromosomes := opts.chromosomeSet()
	idx := &Index{}

	for col, d := range defs {
		if chromosomes != nil && !chromosomes[d.Chromosome] {
			idx.Filtered++
			continue
		}

		ref, alt, err := strand.Resolve(d.SNP, d.IlmnStrand, d.CustomerStrand)
		if err != nil {
			logger.Warn("skipping marker",
				zap.String("marker", d.Name),
				zap.String("chromosome", d.Chromosome),
				zap.Error(err))
			idx.Skipped = append(idx.Skipped, SkippedMarker{Name: d.Name, Reason: err})
			continue
		}

		idx.Markers = append(idx.Markers, ResolvedMarker{
			Chrom: d.Chromosome,
			Pos:   d.Position,
			Name:  d.Name,
			Ref:   ref,
			Alt:   alt,
		})
		idx.Columns = append(idx.Columns, col)
	}

	return idx
}
