package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rmozafari/illumina2vcf/internal/duckdb"
	"github.com/rmozafari/illumina2vcf/internal/marker"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the marker manifest cache",
		Long: `Load a delimited marker manifest into a DuckDB database once, then pass
the .duckdb file as --marker-file to later convert runs to skip re-parsing.`,
	}

	cmd.AddCommand(newCacheBuildCmd())

	return cmd
}

func newCacheBuildCmd() *cobra.Command {
	var (
		markerFile string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Load a marker manifest into a DuckDB database",
		Example: `  illumina2vcf cache build --marker-file manifest.csv --output markers.duckdb`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			if !duckdb.IsStorePath(outputPath) {
				outputPath += ".duckdb"
			}

			// Rebuild from scratch: stale rows would shift column alignment.
			if _, err := os.Stat(outputPath); err == nil {
				if err := os.Remove(outputPath); err != nil {
					return fmt.Errorf("remove existing database: %w", err)
				}
			}

			p, err := marker.NewParser(markerFile)
			if err != nil {
				return err
			}
			defer p.Close()

			defs, err := p.ReadAll()
			if err != nil {
				return err
			}
			if len(defs) == 0 {
				return fmt.Errorf("marker manifest %s is empty", markerFile)
			}

			store, err := duckdb.Open(outputPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.InsertMarkers(defs); err != nil {
				return err
			}

			logger.Info("marker cache built",
				zap.String("manifest", markerFile),
				zap.String("database", filepath.Clean(outputPath)),
				zap.Int("markers", len(defs)))
			return nil
		},
	}

	cmd.Flags().StringVar(&markerFile, "marker-file", "", "Path to the delimited marker manifest")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output DuckDB file path")

	cmd.MarkFlagRequired("marker-file")
	cmd.MarkFlagRequired("output")

	return cmd
}
