// Package usecase implements the HTML article text part of the exploration
// flow.
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"data_explorer/internal/platform/extract"
	"data_explorer/internal/platform/outfile"
	"data_explorer/internal/platform/report"
	"data_explorer/internal/platform/textutil"
	"data_explorer/internal/shared/apperr"
)

const (
	ExcerptFile   = "html_text_excerpt.txt"
	SentencesFile = "html_sentences_sample.csv"

	maxExcerptChars = 4000 // 抜粋の最大文字数
	maxSentences    = 80   // 文サンプルの最大行数
	previewRows     = 5
)

// Fetcher はURLから文書全体を取得するインターフェイスです。
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Request はHTML取得の対象URLと出力先です。
type Request struct {
	URL    string
	OutDir string
}

// HTMLTextUsecase はWebページから本文テキストを抽出して保存するユースケースです。
type HTMLTextUsecase struct {
	fetcher   Fetcher
	extractor extract.HTMLExtractor
	out       io.Writer
}

// NewHTMLTextUsecase は新しい HTMLTextUsecase を作成します。
func NewHTMLTextUsecase(fetcher Fetcher, extractor extract.HTMLExtractor, out io.Writer) *HTMLTextUsecase {
	return &HTMLTextUsecase{fetcher: fetcher, extractor: extractor, out: out}
}

// Run はページを取得して本文を抽出し、抜粋テキストと文サンプルCSVを書き出します。
func (hu *HTMLTextUsecase) Run(ctx context.Context, req Request) error {
	slog.Info("fetching html", "url", req.URL)
	raw, err := hu.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: parse html %s: %w", apperr.ErrMalformedDocument, req.URL, err)
	}

	chunks := hu.extractor.Extract(doc)
	text := textutil.CollapseWhitespace(strings.Join(chunks, "\n\n"))
	if text == "" {
		slog.Warn("no visible text found", "url", req.URL)
	}

	excerpt := textutil.Truncate(text, maxExcerptChars)
	if err := outfile.WriteFile(filepath.Join(req.OutDir, ExcerptFile), []byte(excerpt)); err != nil {
		return err
	}

	sentences := textutil.SplitSentences(excerpt, maxSentences)
	if err := outfile.WriteColumn(filepath.Join(req.OutDir, SentencesFile), "sentence", sentences); err != nil {
		return err
	}

	frame := report.Frame{Columns: []string{"sentence"}}
	for _, s := range sentences {
		frame.Rows = append(frame.Rows, []string{s})
	}
	report.PrintHead(hu.out, frame, previewRows, "HTML sentences (first 5 rows)")
	report.Summarize(hu.out, frame, "HTML sentences")
	return nil
}
