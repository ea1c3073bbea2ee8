package http

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// decodeBody wraps body with decoders for every coding listed in the
// Content-Encoding header. Codings are undone in reverse order of
// application.
func decodeBody(contentEncoding string, body io.Reader) (io.ReadCloser, error) {
	var codings []string
	for _, c := range strings.Split(contentEncoding, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && c != "identity" {
			codings = append(codings, c)
		}
	}

	rc := io.NopCloser(body)
	closers := []io.Closer{}
	for i := len(codings) - 1; i >= 0; i-- {
		next, err := decoderFor(codings[i], rc)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, next)
		rc = next
	}
	if len(closers) == 0 {
		return rc, nil
	}
	return &multiCloser{Reader: rc, closers: closers}, nil
}

func decoderFor(coding string, r io.Reader) (io.ReadCloser, error) {
	switch coding {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case "deflate":
		return newDeflateReader(r)
	case "br":
		return io.NopCloser(brotli.NewReader(r)), nil
	case "zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", coding)
	}
}

// newDeflateReader accepts both zlib-wrapped and raw deflate streams, since
// servers disagree on what "deflate" means.
func newDeflateReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(2)
	if err == nil && isZlibHeader(header[0], header[1]) {
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		return zr, nil
	}
	return flate.NewReader(br), nil
}

func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	return closeAll(m.closers)
}

func closeAll(closers []io.Closer) error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
