// Command explore downloads a price series, an HTML page and a PDF, extracts
// their text and writes flat CSV/text files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"data_explorer/internal/app/di"
	htmlusecase "data_explorer/internal/feature/htmltext/usecase"
	pdfusecase "data_explorer/internal/feature/pdftext/usecase"
	historyusecase "data_explorer/internal/feature/pricehistory/usecase"
	"data_explorer/internal/platform/extract"
	"data_explorer/internal/platform/logging"
)

const (
	defaultHTMLURL = "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm"
	defaultPDFURL  = "https://d18rn0p25nwr6d.cloudfront.net/CIK-0000320193/faab4555-c69b-438a-aaf7-e09305f87ca3.pdf"

	htmlTimeout = 30 * time.Second
	pdfTimeout  = 60 * time.Second
)

var runChoices = []string{"all", "csv", "html", "pdf"}

type options struct {
	outDir            string
	ticker            string
	period            string
	interval          string
	htmlURL           string
	pdfURL            string
	run               string
	htmlMinParagraphs int
	ocr               bool
	logLevel          string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "explore",
		Short:         "Fetch and extract a price series, an HTML page and a PDF into CSV/text files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(runChoices, opts.run) {
				return fmt.Errorf("invalid --run %q (choose from %v)", opts.run, runChoices)
			}
			return logging.Setup(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.outDir, "outdir", "outputs", "Output directory")
	f.StringVar(&opts.ticker, "ticker", "AAPL", "Ticker for the price series part")
	f.StringVar(&opts.period, "period", "1y", "History range (e.g., 1mo, 3mo, 1y)")
	f.StringVar(&opts.interval, "interval", "1d", "Bar interval (e.g., 1d, 1wk, 15m)")
	f.StringVar(&opts.htmlURL, "html_url", defaultHTMLURL, "HTML page to extract text from")
	f.StringVar(&opts.pdfURL, "pdf_url", defaultPDFURL, "PDF document to extract text from")
	f.StringVar(&opts.run, "run", "all", "Which part to run: all, csv, html or pdf")
	f.IntVar(&opts.htmlMinParagraphs, "html_min_paragraphs", extract.DefaultMinParagraphs, "Paragraph count below which the whole page text is used")
	f.BoolVar(&opts.ocr, "ocr", true, "Use Google Cloud Vision OCR when a PDF has no text layer")
	f.StringVar(&opts.logLevel, "log_level", "info", "Log level: debug, info, warn or error")
	return cmd
}

// run executes the selected parts. A failing part is logged and the next
// part still runs.
func run(ctx context.Context, opts *options, out io.Writer) error {
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create outdir: %w", err)
	}
	limiter := di.NewLimiter()
	want := func(part string) bool { return opts.run == "all" || opts.run == part }

	if want("csv") {
		uc := historyusecase.NewHistoryUsecase(di.NewMarket(), out)
		req := historyusecase.Request{Ticker: opts.ticker, Period: opts.period, Interval: opts.interval, OutDir: opts.outDir}
		if _, err := uc.Run(ctx, req); err != nil {
			slog.Error("CSV part failed", "error", err)
		}
	}

	if want("html") {
		uc := htmlusecase.NewHTMLTextUsecase(
			di.NewFetcher(htmlTimeout, limiter),
			extract.NewHTMLExtractor(opts.htmlMinParagraphs),
			out,
		)
		if err := uc.Run(ctx, htmlusecase.Request{URL: opts.htmlURL, OutDir: opts.outDir}); err != nil {
			slog.Error("HTML part failed", "error", err)
		}
	}

	if want("pdf") {
		extractor, closeOCR := di.NewPDFExtractor(ctx, opts.ocr)
		uc := pdfusecase.NewPDFTextUsecase(di.NewFetcher(pdfTimeout, limiter), extractor, out)
		if err := uc.Run(ctx, pdfusecase.Request{URL: opts.pdfURL, OutDir: opts.outDir}); err != nil {
			slog.Error("PDF part failed", "error", err)
		}
		closeOCR()
	}

	slog.Info("done", "outdir", opts.outDir)
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		slog.Error("explore failed", "error", err)
		os.Exit(1)
	}
}
