package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"data_explorer/internal/shared/apperr"
)

// DefaultMaxPages bounds how many PDF pages are read for a text layer.
const DefaultMaxPages = 5

// PDFDocument is an opened PDF. Pages are numbered from 1.
type PDFDocument interface {
	NumPages() int
	PageText(page int) (string, error)
}

// PDFOpener parses raw PDF bytes.
type PDFOpener interface {
	Open(raw []byte) (PDFDocument, error)
}

// PageOCR recognizes the text of one rendered PDF page.
type PageOCR interface {
	RecognizePage(ctx context.Context, raw []byte, page int) (string, error)
}

// PDFExtractor reads the embedded text layer of the first MaxPages pages and
// falls back to OCR of page 1 when none of them has any.
type PDFExtractor struct {
	opener   PDFOpener
	ocr      PageOCR
	maxPages int
}

// NewPDFExtractor builds a PDFExtractor. ocr may be nil, in which case the
// OCR fallback is reported as unavailable and yields nothing.
func NewPDFExtractor(opener PDFOpener, ocr PageOCR, maxPages int) *PDFExtractor {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}
	return &PDFExtractor{opener: opener, ocr: ocr, maxPages: maxPages}
}

// Extract returns one trimmed chunk per page with selectable text, or the
// OCR text of the first page as a single chunk. Every failure is logged
// and degrades to a nil result.
func (e *PDFExtractor) Extract(ctx context.Context, raw []byte) []string {
	chunks, err := e.textLayer(raw)
	if err != nil {
		slog.Warn("pdf read error", "error", err)
	}
	if len(chunks) > 0 {
		return chunks
	}

	slog.Info("no selectable text found, trying OCR on first page")
	text, err := e.recognizeFirstPage(ctx, raw)
	if err != nil {
		if errors.Is(err, apperr.ErrMissingDependency) {
			slog.Warn("OCR unavailable, skipping", "error", err)
		} else {
			slog.Warn("OCR failed", "error", err)
		}
		return nil
	}
	if text == "" {
		return nil
	}
	return []string{text}
}

func (e *PDFExtractor) textLayer(raw []byte) ([]string, error) {
	doc, err := e.opener.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrMalformedDocument, err)
	}

	n := min(doc.NumPages(), e.maxPages)
	var chunks []string
	for page := 1; page <= n; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			slog.Warn("failed to read pdf page", "page", page, "error", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			chunks = append(chunks, text)
		}
	}
	return chunks, nil
}

func (e *PDFExtractor) recognizeFirstPage(ctx context.Context, raw []byte) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("%w: no OCR engine configured", apperr.ErrMissingDependency)
	}
	text, err := e.ocr.RecognizePage(ctx, raw, 1)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
