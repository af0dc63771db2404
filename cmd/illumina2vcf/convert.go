package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rmozafari/illumina2vcf/internal/convert"
	"github.com/rmozafari/illumina2vcf/internal/duckdb"
	"github.com/rmozafari/illumina2vcf/internal/marker"
	"github.com/rmozafari/illumina2vcf/internal/sample"
)

func newConvertCmd() *cobra.Command {
	var (
		genotypeFile string
		markerFile   string
		outputVCF    string
		phased       bool
		unphased     bool
		chromosomes  []string
		reference    string
		workers      int
		skipBad      bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a genotype export plus marker manifest to VCF",
		Example: `  # Unphased conversion to a file
  illumina2vcf convert --genotype-file samples.csv --marker-file manifest.csv --output-vcf out.vcf --unphased

  # Phased, restricted to two chromosomes, streaming to stdout
  illumina2vcf convert --genotype-file samples.csv --marker-file manifest.csv --phased --chromosome 1 --chromosome 3

  # Read the manifest from a prebuilt DuckDB cache
  illumina2vcf convert --genotype-file samples.csv --marker-file markers.duckdb --unphased -o out.vcf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if phased == unphased {
				return fmt.Errorf("specify exactly one of --phased or --unphased")
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			if reference == "" {
				reference = viper.GetString("reference")
			}
			if !cmd.Flags().Changed("workers") && viper.IsSet("workers") {
				workers = viper.GetInt("workers")
			}

			defs, err := loadMarkers(markerFile, logger)
			if err != nil {
				return err
			}

			table, err := sample.ReadFile(genotypeFile)
			if err != nil {
				return err
			}
			logger.Info("loaded genotype table",
				zap.String("path", genotypeFile),
				zap.Int("samples", len(table.Records)))

			out := os.Stdout
			if outputVCF != "" && outputVCF != "-" {
				f, err := os.Create(outputVCF)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			conv := convert.New(convert.Options{
				Phased:         phased,
				Chromosomes:    chromosomes,
				Reference:      reference,
				Source:         "illumina2vcf " + version,
				Workers:        workers,
				SkipBadSamples: skipBad,
			})
			conv.SetLogger(logger)

			summary, err := conv.Run(defs, table, out)
			if err != nil {
				return err
			}

			logger.Info("conversion complete",
				zap.Int("markers_written", summary.MarkersWritten),
				zap.Int("markers_skipped", summary.MarkersSkipped),
				zap.Int("markers_filtered", summary.MarkersFiltered),
				zap.Int("samples", summary.SamplesWritten),
				zap.Int("samples_dropped", summary.SamplesDropped),
				zap.Duration("elapsed", summary.Elapsed))
			return nil
		},
	}

	cmd.Flags().StringVar(&genotypeFile, "genotype-file", "", "Path to the genotype table (Matricola,genotype)")
	cmd.Flags().StringVar(&markerFile, "marker-file", "", "Path to the marker manifest (delimited text or .duckdb cache)")
	cmd.Flags().StringVarP(&outputVCF, "output-vcf", "o", "", "Output VCF path (default: stdout)")
	cmd.Flags().BoolVar(&phased, "phased", false, "Write phased genotypes ('|' separator)")
	cmd.Flags().BoolVar(&unphased, "unphased", false, "Write unphased genotypes ('/' separator)")
	cmd.Flags().StringSliceVar(&chromosomes, "chromosome", nil, "Only convert markers on these chromosomes (repeatable)")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference genome name for the VCF header (default: config or "+defaultReference+")")
	cmd.Flags().IntVar(&workers, "workers", 0, "Decode worker count (default: one per CPU)")
	cmd.Flags().BoolVar(&skipBad, "skip-bad-samples", false, "Drop samples with misaligned genotype codes instead of failing")

	cmd.MarkFlagRequired("genotype-file")
	cmd.MarkFlagRequired("marker-file")

	return cmd
}

// loadMarkers reads the full marker manifest, from a DuckDB cache or a
// delimited text file depending on the path extension.
func loadMarkers(path string, logger *zap.Logger) ([]marker.Definition, error) {
	var defs []marker.Definition

	if duckdb.IsStorePath(path) {
		store, err := duckdb.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		defs, err = store.LoadMarkers()
		if err != nil {
			return nil, err
		}
	} else {
		p, err := marker.NewParser(path)
		if err != nil {
			return nil, err
		}
		defer p.Close()

		defs, err = p.ReadAll()
		if err != nil {
			return nil, err
		}
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("marker manifest %s is empty", path)
	}

	logger.Info("loaded marker manifest",
		zap.String("path", path),
		zap.Int("markers", len(defs)))
	return defs, nil
}
