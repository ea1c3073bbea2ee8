// Package browser captures rendered pages with a headless Chrome session.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"data_explorer/internal/shared/apperr"
)

// Config holds settings for a headless fetch.
type Config struct {
	UserAgent string
	Wait      time.Duration // delay after navigation for client-side rendering
	Timeout   time.Duration // whole-session deadline
	ExecPath  string        // optional Chrome binary; empty uses the default lookup
}

// LoadConfig returns the default headless configuration.
func LoadConfig() Config {
	return Config{
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36",
		Wait:      5 * time.Second,
		Timeout:   60 * time.Second,
	}
}

// Browser fetches pages through a fresh headless Chrome per call.
type Browser struct {
	cfg Config
}

// New creates a Browser with cfg. No Chrome process starts until Fetch.
func New(cfg Config) *Browser {
	return &Browser{cfg: cfg}
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(b.cfg.UserAgent),
	)
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}
	return opts
}

// Fetch navigates to rawURL, waits for the configured delay and returns the
// outer HTML of the document. A missing Chrome binary is reported as
// apperr.ErrMissingDependency.
func (b *Browser) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))
	defer tabCancel()

	timeoutCtx, cancel := context.WithTimeout(tabCtx, b.cfg.Timeout)
	defer cancel()

	slog.Info("opening page in headless browser", "url", rawURL, "wait", b.cfg.Wait)
	var htmlContent string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(rawURL),
		chromedp.Sleep(b.cfg.Wait),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	return []byte(htmlContent), nil
}

func classify(rawURL string, err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: headless chrome: %w", apperr.ErrMissingDependency, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: browse %s", apperr.ErrNetwork, apperr.ErrTimeout, rawURL)
	default:
		return fmt.Errorf("%w: browse %s: %w", apperr.ErrNetwork, rawURL, err)
	}
}
