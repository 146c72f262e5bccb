package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"benchmark-service/internal/benchmark/catalog"
	"benchmark-service/internal/benchmark/model"
)

type importOptions struct {
	kind      string
	file      string
	headerRow int
	truncate  bool
	dryRun    bool
}

func newImportCommand(root *rootOptions) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a benchmark sheet into Postgres",
		Long: `Import a CPU, GPU or disk benchmark sheet (.xlsx, .xls, .csv) into Postgres.

Rows are upserted by name inside one transaction. With --truncate the table is
emptied first. --dry-run only parses the sheet and prints the counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "Benchmark kind: cpu, gpu or disk")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Benchmark sheet to import")
	cmd.Flags().IntVar(&opts.headerRow, "header-row", 1, "1-based row holding the column headers")
	cmd.Flags().BoolVar(&opts.truncate, "truncate", false, "Empty the table before importing")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Parse only, do not write to the database")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, root *rootOptions, opts *importOptions) error {
	kind, err := model.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	recs, stats, err := catalog.Read(kind, f, filepath.Base(opts.file), opts.headerRow)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("%s: no valid %s rows (%d skipped)", opts.file, kind, stats.Skipped)
	}

	if !opts.dryRun {
		ctx := cmd.Context()
		db, err := root.openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		persisted, err := db.Import(ctx, kind, recs, opts.truncate)
		if err != nil {
			return fmt.Errorf("importing %s: %w", kind, err)
		}
		persisted.Skipped = stats.Skipped
		stats = persisted
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
