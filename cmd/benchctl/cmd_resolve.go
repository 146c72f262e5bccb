package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"benchmark-service/internal/benchmark/model"
	"benchmark-service/internal/benchmark/service"
)

func newResolveCommand(root *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "resolve <text>...",
		Short: "Resolve requirement text to a benchmark score",
		Long: `Resolve free-text hardware requirements to benchmark scores.

Each argument may list alternatives ("i5-6600K or Ryzen 5 1600", "GTX 970 / RX 480");
the highest score among the matched alternatives is printed. Text without a
confident match prints "unknown".`,
		Example: `  benchctl resolve --type cpu "Intel Core i7-8700K"
  benchctl resolve -t gpu "GTX 970 / Radeon RX 480" "N/A"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseKind(kind)
			if err != nil {
				return err
			}
			snap, err := root.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			res := service.NewResolver(root.logger(), 1)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, raw := range args {
				out := "unknown"
				if s := res.Score(k, raw, snap); s != nil {
					out = fmt.Sprint(*s)
				}
				fmt.Fprintf(tw, "%s\t%s\n", raw, out)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "cpu", "Benchmark kind: cpu, gpu or disk")
	return cmd
}
