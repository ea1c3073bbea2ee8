package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"data_explorer/internal/shared/apperr"
	"data_explorer/internal/shared/ratelimiter"
)

// Fetcher downloads whole documents with a single GET per call.
// There are no retries: a failed request is reported once.
type Fetcher struct {
	client  *resty.Client
	limiter ratelimiter.Limiter
	timeout time.Duration
}

// NewFetcher builds a Fetcher on top of hc. limiter may be nil.
func NewFetcher(hc *http.Client, cfg FetcherConfig, limiter ratelimiter.Limiter) *Fetcher {
	client := resty.NewWithClient(hc)
	client.SetHeaders(cfg.Headers)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: client, limiter: limiter, timeout: timeout}
}

// Fetch GETs rawURL and returns the decoded body. Text bodies are
// transcoded to UTF-8 from the declared or sniffed charset; other bodies
// are returned as sent.
//
// Errors wrap apperr.ErrNetwork. When the per-request deadline expires the
// error also wraps apperr.ErrTimeout.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: GET %s: %w", apperr.ErrNetwork, rawURL, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	slog.Debug("start request", "method", http.MethodGet, "url", rawURL)
	res, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, wrapFetchError(ctx, rawURL, err)
	}
	body := res.RawBody()
	defer func() {
		if err := body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, fmt.Errorf("%w: GET %s: http %d", apperr.ErrNetwork, rawURL, res.StatusCode())
	}

	r, err := decodeBody(res.Header().Get("Content-Encoding"), body)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", apperr.ErrNetwork, rawURL, err)
	}
	defer r.Close()

	text, err := toUTF8(r, res.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", apperr.ErrNetwork, rawURL, err)
	}

	data, err := io.ReadAll(text)
	if err != nil {
		return nil, wrapFetchError(ctx, rawURL, err)
	}
	slog.Debug("request succeeded", "url", rawURL, "status", res.StatusCode(), "bytes", len(data))
	return data, nil
}

// toUTF8 wraps r with a charset decoder when contentType is a text type.
func toUTF8(r io.Reader, contentType string) (io.Reader, error) {
	if !isText(contentType) {
		return r, nil
	}
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", contentType, err)
	}
	return cr, nil
}

func isText(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/xhtml+xml"
}

func wrapFetchError(ctx context.Context, rawURL string, err error) error {
	if IsTimeout(ctx, err) {
		return fmt.Errorf("%w: %w: GET %s", apperr.ErrNetwork, apperr.ErrTimeout, rawURL)
	}
	return fmt.Errorf("%w: GET %s: %w", apperr.ErrNetwork, rawURL, err)
}

// IsTimeout reports whether err, returned by a request made with ctx, was
// caused by a deadline: the context's, the client's or the dialer's.
func IsTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
