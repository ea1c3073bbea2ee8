// Package usecase implements the PDF text part of the exploration flow.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"data_explorer/internal/platform/outfile"
	"data_explorer/internal/platform/report"
	"data_explorer/internal/platform/textutil"
	"data_explorer/internal/shared/apperr"
)

const (
	DocumentFile   = "document.pdf"
	ExcerptFile    = "pdf_text_excerpt.txt"
	ParagraphsFile = "pdf_paragraphs_sample.csv"

	maxExcerptLines = 120 // 抜粋に含める空でない行の最大数
	maxParagraphs   = 60  // 段落サンプルの最大行数
	previewRows     = 5
)

// Fetcher はURLから文書全体を取得するインターフェイスです。
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// TextExtractor はPDFのバイト列からページ単位のテキストを抽出するインターフェイスです。
// 失敗時は空の結果を返します。
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte) []string
}

// Request はPDFの取得元URLと出力先です。
type Request struct {
	URL    string
	OutDir string
}

// PDFTextUsecase はPDFをダウンロードしてテキストを抽出・保存するユースケースです。
type PDFTextUsecase struct {
	fetcher   Fetcher
	extractor TextExtractor
	out       io.Writer
}

// NewPDFTextUsecase は新しい PDFTextUsecase を作成します。
func NewPDFTextUsecase(fetcher Fetcher, extractor TextExtractor, out io.Writer) *PDFTextUsecase {
	return &PDFTextUsecase{fetcher: fetcher, extractor: extractor, out: out}
}

// Run はPDFを document.pdf として保存し、抽出したテキストから抜粋と段落サンプルを書き出します。
// テキストが得られない場合は ErrEmptySource を返し、それ以降のファイルは作成しません。
func (pu *PDFTextUsecase) Run(ctx context.Context, req Request) error {
	slog.Info("downloading pdf", "url", req.URL)
	raw, err := pu.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return err
	}
	if err := outfile.WriteFile(filepath.Join(req.OutDir, DocumentFile), raw); err != nil {
		return err
	}

	text := strings.Join(pu.extractor.Extract(ctx, raw), "\n\n")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: No text could be extracted from %s", apperr.ErrEmptySource, req.URL)
	}

	excerpt := strings.Join(textutil.NonEmptyLines(text, maxExcerptLines), "\n")
	if err := outfile.WriteFile(filepath.Join(req.OutDir, ExcerptFile), []byte(excerpt)); err != nil {
		return err
	}

	paragraphs := textutil.SplitParagraphs(text, maxParagraphs)
	if err := outfile.WriteColumn(filepath.Join(req.OutDir, ParagraphsFile), "paragraph", paragraphs); err != nil {
		return err
	}

	frame := report.Frame{Columns: []string{"paragraph"}}
	for _, p := range paragraphs {
		frame.Rows = append(frame.Rows, []string{p})
	}
	report.PrintHead(pu.out, frame, previewRows, "PDF paragraphs (first 5 rows)")
	report.Summarize(pu.out, frame, "PDF paragraphs")
	return nil
}
