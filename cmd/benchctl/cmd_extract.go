package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"benchmark-service/internal/benchmark/extract"
	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/benchmark/service"
)

type extractOutput struct {
	Requirements []model.Requirement `json:"requirements"`
	Aggregate    *model.Aggregate    `json:"aggregate,omitempty"`
	Diff         []extract.Diff      `json:"diff,omitempty"`
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	var (
		resolve bool
		compare string
	)
	cmd := &cobra.Command{
		Use:   "extract <file|->",
		Short: "Extract minimum/recommended requirements from text",
		Long: `Extract minimum and recommended requirements (CPU, GPU, RAM, storage)
from a requirements text, such as a store page section.

With --resolve the CPU/GPU scores are looked up and the heaviest requirement of
each type is reported. With --compare the extraction is diffed against a second file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args[0])
			if err != nil {
				return err
			}
			out := extractOutput{Requirements: extract.Parse(text)}

			if compare != "" {
				other, err := readText(cmd, compare)
				if err != nil {
					return err
				}
				out.Diff = extract.Compare(out.Requirements, extract.Parse(other))
			}

			if resolve {
				snap, err := root.loadCatalog(cmd.Context())
				if err != nil {
					return err
				}
				res := service.NewResolver(root.logger(), 1)
				for i := range out.Requirements {
					out.Requirements[i] = res.Resolve(out.Requirements[i], snap)
				}
				agg := service.ReduceAggregate(out.Requirements)
				out.Aggregate = &agg
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Look up benchmark scores and reduce")
	cmd.Flags().StringVar(&compare, "compare", "", "Second text file to diff the extraction against")
	return cmd
}

func readText(cmd *cobra.Command, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}
