// Command filter parses a saved portal snapshot into market_data.csv and
// news_data.csv.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"data_explorer/internal/feature/portal/usecase"
	"data_explorer/internal/platform/logging"
)

func newRootCmd() *cobra.Command {
	var input, outDir, logLevel string
	cmd := &cobra.Command{
		Use:           "filter",
		Short:         "Extract market cards and latest news from a portal snapshot.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := usecase.NewFilterUsecase().Run(cmd.Context(), usecase.FilterRequest{Input: input, OutDir: outDir})
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&input, "input", "data/raw_data/web_data.html", "Snapshot file")
	f.StringVar(&outDir, "outdir", "data/processed_data", "Output directory")
	f.StringVar(&logLevel, "log_level", "info", "Log level: debug, info, warn or error")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("filter failed", "error", err)
		os.Exit(1)
	}
}
