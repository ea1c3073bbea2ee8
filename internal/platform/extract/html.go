// Package extract turns parsed documents into ordered paragraph chunks.
//
// The extractors only consume already-parsed documents and injected
// collaborators, so they never fetch anything themselves.
package extract

import (
	"github.com/PuerkitoBio/goquery"

	"data_explorer/internal/platform/textutil"
)

// DefaultMinParagraphs is the number of non-empty <p> chunks below which the
// HTML extractor falls back to the whole document text.
const DefaultMinParagraphs = 3

// HTMLExtractor extracts paragraph text from an HTML tree.
type HTMLExtractor struct {
	MinParagraphs int
}

// NewHTMLExtractor returns an extractor with the given fallback threshold.
// A threshold below 1 uses DefaultMinParagraphs.
func NewHTMLExtractor(minParagraphs int) HTMLExtractor {
	if minParagraphs < 1 {
		minParagraphs = DefaultMinParagraphs
	}
	return HTMLExtractor{MinParagraphs: minParagraphs}
}

// Extract returns the text of every <p> element in document order. When
// fewer than MinParagraphs of them carry text it returns the visible text of
// the whole document as a single whitespace-collapsed chunk instead.
// The result is empty only when the document has no visible text.
func (e HTMLExtractor) Extract(doc *goquery.Document) []string {
	var paras []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := textutil.StrippedText(s, " "); text != "" {
			paras = append(paras, text)
		}
	})
	if len(paras) >= e.MinParagraphs {
		return paras
	}

	all := textutil.CollapseWhitespace(textutil.StrippedText(doc.Selection, " "))
	if all == "" {
		return nil
	}
	return []string{all}
}
