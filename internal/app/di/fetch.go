package di

import (
	"context"
	"log/slog"
	"time"

	"data_explorer/internal/feature/pdftext/adapters/pdfreader"
	"data_explorer/internal/feature/pdftext/adapters/vision"
	"data_explorer/internal/platform/browser"
	"data_explorer/internal/platform/extract"
	infrahttp "data_explorer/internal/platform/http"
	"data_explorer/internal/shared/ratelimiter"
)

// Politeness limit shared by every fetcher of one process.
const (
	requestsPerInterval = 10
	limiterInterval     = time.Second
)

// NewLimiter creates the shared politeness limiter.
func NewLimiter() *ratelimiter.RateLimiter {
	return ratelimiter.NewRateLimiter(requestsPerInterval, limiterInterval)
}

// NewFetcher creates a document fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration, limiter ratelimiter.Limiter) *infrahttp.Fetcher {
	cfg := infrahttp.LoadFetcherConfig(timeout)
	// The Client timeout is a backstop; the fetcher applies the deadline per request.
	return infrahttp.NewFetcher(infrahttp.NewHTTPClient(2*timeout), cfg, limiter)
}

// NewBrowserLikeFetcher creates a fetcher that sends desktop-browser headers.
func NewBrowserLikeFetcher(timeout time.Duration, limiter ratelimiter.Limiter) *infrahttp.Fetcher {
	cfg := infrahttp.LoadFetcherConfig(timeout)
	cfg.Headers["User-Agent"] = infrahttp.BrowserUserAgent
	return infrahttp.NewFetcher(infrahttp.NewHTTPClient(2*timeout), cfg, limiter)
}

// NewBrowser creates a headless Chrome page source.
func NewBrowser(wait, timeout time.Duration) *browser.Browser {
	cfg := browser.LoadConfig()
	if wait >= 0 {
		cfg.Wait = wait
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return browser.New(cfg)
}

// NewPDFExtractor creates the PDF extractor. When enableOCR is set it tries
// to create a Vision client; without credentials OCR is left out and a
// warning is logged. The returned close function releases the client.
func NewPDFExtractor(ctx context.Context, enableOCR bool) (*extract.PDFExtractor, func()) {
	if !enableOCR {
		return extract.NewPDFExtractor(pdfreader.Opener{}, nil, extract.DefaultMaxPages), func() {}
	}

	ocr, err := vision.NewVisionPageOCR(ctx)
	if err != nil {
		slog.Warn("OCR unavailable, continuing without it", "error", err)
		return extract.NewPDFExtractor(pdfreader.Opener{}, nil, extract.DefaultMaxPages), func() {}
	}
	closeFn := func() {
		if err := ocr.Close(); err != nil {
			slog.Warn("failed to close vision client", "error", err)
		}
	}
	return extract.NewPDFExtractor(pdfreader.Opener{}, ocr, extract.DefaultMaxPages), closeFn
}
