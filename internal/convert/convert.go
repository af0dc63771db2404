// Package convert drives the Illumina-to-VCF conversion: it builds the
// marker index, decodes per-sample genotype codes against each marker's
// resolved alleles and writes the resulting VCF records in marker order.
package convert

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rmozafari/illumina2vcf/internal/marker"
	"github.com/rmozafari/illumina2vcf/internal/output"
	"github.com/rmozafari/illumina2vcf/internal/sample"
)

// Progress is logged every this many written markers.
const progressEvery = 100000

// Options is the immutable run configuration threaded through the
// conversion.
type Options struct {
	// Phased selects '|' over '/' as the genotype separator for the
	// whole run.
	Phased bool
	// Chromosomes restricts the run to markers on these chromosome
	// labels. Empty means no filter.
	Chromosomes []string
	// Reference names the reference genome in the VCF header.
	Reference string
	// Source names the producing tool in the VCF header.
	Source string
	// Workers sets the decode worker count; 0 means one per CPU.
	Workers int
	// SkipBadSamples drops samples whose genotype code length does not
	// match the marker count instead of failing the run. Every dropped
	// sample is logged.
	SkipBadSamples bool
}

// chromosomeSet returns the filter as a lookup set, nil when unfiltered.
func (o Options) chromosomeSet() map[string]bool {
	if len(o.Chromosomes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.Chromosomes))
	for _, c := range o.Chromosomes {
		set[strings.TrimSpace(c)] = true
	}
	return set
}

// Summary reports what a run produced.
type Summary struct {
	MarkersWritten  int
	MarkersSkipped  int
	MarkersFiltered int
	SamplesWritten  int
	SamplesDropped  int
	Skipped         []SkippedMarker
	Elapsed         time.Duration
}

// Converter converts marker definitions plus a genotype table into VCF.
type Converter struct {
	opts   Options
	logger *zap.Logger
}

// New creates a converter with the given run options.
func New(opts Options) *Converter {
	return &Converter{
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warnings and progress messages.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Run converts the manifest and genotype table into a VCF stream on w.
//
// Samples whose genotype code length does not match the marker count are
// fatal (sample.LengthMismatchError) unless Options.SkipBadSamples is
// set, in which case they are dropped with a warning. Markers that fail
// strand resolution are skipped, warned about and counted in the summary;
// all remaining markers are written in manifest order.
func (c *Converter) Run(defs []marker.Definition, table *sample.Table, w io.Writer) (*Summary, error) {
	start := time.Now()

	records := table.Records
	dropped := 0
	if c.opts.SkipBadSamples {
		kept := make([]sample.Record, 0, len(records))
		for _, r := range records {
			if len(r.Genotypes) != len(defs) {
				c.logger.Warn("dropping sample with misaligned genotype code",
					zap.String("sample", r.ID),
					zap.Int("code_length", len(r.Genotypes)),
					zap.Int("marker_count", len(defs)))
				dropped++
				continue
			}
			kept = append(kept, r)
		}
		records = kept
	} else if err := table.Validate(len(defs)); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no samples with valid genotype codes")
	}

	idx := BuildIndex(defs, c.opts, c.logger)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}

	vw := output.NewWriter(w, ids, output.HeaderOptions{
		Source:    c.opts.Source,
		Reference: c.opts.Reference,
	})
	if err := vw.WriteHeader(); err != nil {
		return nil, fmt.Errorf("write vcf header: %w", err)
	}

	items := make(chan workItem, 2*workerCount(c.opts.Workers))
	go func() {
		defer close(items)
		for i, m := range idx.Markers {
			items <- workItem{Seq: i, Marker: m, Col: idx.Columns[i]}
		}
	}()

	results := c.decodeParallel(items, records)

	written := 0
	if err := orderedCollect(results, func(r workResult) error {
		if err := vw.WriteRecord(r.Record, r.Genotypes); err != nil {
			return fmt.Errorf("write vcf record: %w", err)
		}
		written++
		if written%progressEvery == 0 {
			c.logger.Info("conversion progress",
				zap.Int("markers_written", written),
				zap.Int("markers_total", len(idx.Markers)))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := vw.Flush(); err != nil {
		return nil, fmt.Errorf("flush vcf output: %w", err)
	}

	return &Summary{
		MarkersWritten:  written,
		MarkersSkipped:  len(idx.Skipped),
		MarkersFiltered: idx.Filtered,
		SamplesWritten:  len(records),
		SamplesDropped:  dropped,
		Skipped:         idx.Skipped,
		Elapsed:         time.Since(start),
	}, nil
}
