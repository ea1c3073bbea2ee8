// Package pdfreader reads the embedded text layer of PDF documents.
package pdfreader

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"data_explorer/internal/platform/extract"
)

// Opener parses PDFs with github.com/ledongthuc/pdf.
type Opener struct{}

var _ extract.PDFOpener = Opener{}

// Open parses raw. The parser panics on some malformed input, which is
// reported as an error instead.
func (Opener) Open(raw []byte) (doc extract.PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("open pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &document{r: r}, nil
}

type document struct {
	r *pdf.Reader
}

func (d *document) NumPages() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return d.r.NumPage()
}

// PageText returns the plain text of page (1-based). Pages without content
// yield an empty string.
func (d *document) PageText(page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read page %d: %v", page, r)
		}
	}()

	p := d.r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("read page %d: %w", page, err)
	}
	return text, nil
}
