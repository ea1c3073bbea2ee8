package http

import "time"

// Default request headers. Some publishers reject requests that do not look
// like they come from a browser or that lack a descriptive User-Agent.
const (
	DefaultUserAgent      = "Mozilla/5.0 (compatible; data-explorer/1.0)"
	BrowserUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	DefaultAcceptEncoding = "gzip, deflate, br, zstd"
)

// FetcherConfig holds settings for a Fetcher.
type FetcherConfig struct {
	Timeout time.Duration     // per-request deadline
	Headers map[string]string // sent with every request
}

// LoadFetcherConfig returns the default configuration with the given
// per-request timeout.
func LoadFetcherConfig(timeout time.Duration) FetcherConfig {
	return FetcherConfig{
		Timeout: timeout,
		Headers: map[string]string{
			"User-Agent":      DefaultUserAgent,
			"Accept-Language": DefaultAcceptLanguage,
			"Accept-Encoding": DefaultAcceptEncoding,
		},
	}
}
