// Package apperr defines the error kinds shared by every flow.
package apperr

import "errors"

// Error kinds. Callers wrap them with fmt.Errorf("...: %w", ...) and test
// with errors.Is. Per-format failures are logged at the flow boundary and
// the run continues with the next format.
var (
	// ErrNetwork indicates a failed request or a non-2xx response.
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates that a per-request deadline expired.
	// It is always wrapped together with ErrNetwork.
	ErrTimeout = errors.New("request timed out")

	// ErrEmptySource indicates that the provider returned no rows or the
	// document carried no extractable text.
	ErrEmptySource = errors.New("empty source")

	// ErrMissingDependency indicates that an optional collaborator
	// (OCR engine, headless browser) is not available.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrMalformedDocument indicates that an expected container or field
	// was not found in a parsed document.
	ErrMalformedDocument = errors.New("malformed document")
)
