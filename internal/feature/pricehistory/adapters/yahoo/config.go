// Package yahoo provides a client for the Yahoo Finance chart API.
package yahoo

import "time"

// Config holds configuration for the Yahoo Finance chart client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	UserAgent string        // the endpoint rejects requests without a browser User-Agent
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig returns the default Yahoo Finance configuration.
func LoadConfig() Config {
	return Config{
		BaseURL:   "https://query1.finance.yahoo.com",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36",
		Timeout:   30 * time.Second,
	}
}
