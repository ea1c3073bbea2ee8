// Command snapshot saves the raw HTML of the news portal to a local file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"data_explorer/internal/app/di"
	"data_explorer/internal/feature/portal/usecase"
	"data_explorer/internal/platform/logging"
)

type options struct {
	url      string
	output   string
	browser  bool
	wait     time.Duration
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "snapshot",
		Short:         "Save the raw HTML of the news portal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.timeout <= 0 {
				return fmt.Errorf("--timeout must be positive, got %s", opts.timeout)
			}
			return logging.Setup(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var src usecase.PageSource
			if opts.browser {
				src = di.NewBrowser(opts.wait, opts.timeout)
			} else {
				src = di.NewBrowserLikeFetcher(opts.timeout, di.NewLimiter())
			}
			if err := usecase.NewSnapshotUsecase(src).Run(cmd.Context(), usecase.SnapshotRequest{URL: opts.url, Output: opts.output}); err != nil {
				return err
			}
			slog.Info("snapshot saved", "path", opts.output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", usecase.DefaultPortalURL, "Portal URL")
	f.StringVar(&opts.output, "output", "data/raw_data/web_data.html", "Snapshot file")
	f.BoolVar(&opts.browser, "browser", false, "Render the page in headless Chrome before saving")
	f.DurationVar(&opts.wait, "wait", 5*time.Second, "Delay after navigation when --browser is set")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "Request deadline")
	f.StringVar(&opts.logLevel, "log_level", "info", "Log level: debug, info, warn or error")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("snapshot failed", "error", err)
		os.Exit(1)
	}
}
