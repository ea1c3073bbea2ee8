package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"

	"data_explorer/internal/feature/pricehistory/domain/entity"
	"data_explorer/internal/platform/outfile"
	"data_explorer/internal/platform/report"
	"data_explorer/internal/shared/apperr"
)

const previewRows = 5 // プレビュー表示する行数

// PriceProvider は株価履歴を取得するプロバイダのインターフェイスです。
// 外部 API の実装を抽象化します。
type PriceProvider interface {
	GetHistory(ctx context.Context, ticker, period, interval string) (entity.PriceHistory, error)
}

// Request は株価履歴の取得条件と出力先です。
type Request struct {
	Ticker   string
	Period   string
	Interval string
	OutDir   string
}

// HistoryUsecase は株価履歴を取得してCSVに保存するユースケースです。
type HistoryUsecase struct {
	provider PriceProvider
	out      io.Writer
}

// NewHistoryUsecase は新しい HistoryUsecase を作成します。out にはプレビューと要約が出力されます。
func NewHistoryUsecase(provider PriceProvider, out io.Writer) *HistoryUsecase {
	return &HistoryUsecase{provider: provider, out: out}
}

// Run は履歴を取得し <outdir>/<ticker>_history.csv に書き出した後、
// 先頭行のプレビューと要約を出力します。保存したファイルのパスを返します。
func (hu *HistoryUsecase) Run(ctx context.Context, req Request) (string, error) {
	slog.Info("fetching price history", "ticker", req.Ticker, "period", req.Period, "interval", req.Interval)
	h, err := hu.provider.GetHistory(ctx, req.Ticker, req.Period, req.Interval)
	if err != nil {
		return "", fmt.Errorf("price history %s: %w", req.Ticker, err)
	}
	if len(h.Rows) == 0 {
		return "", fmt.Errorf("%w: No data returned for ticker %s", apperr.ErrEmptySource, req.Ticker)
	}

	frame := ToFrame(h)
	path := filepath.Join(req.OutDir, req.Ticker+"_history.csv")
	if err := outfile.WriteCSV(path, frame.Columns, frame.Rows); err != nil {
		return "", err
	}

	report.PrintHead(hu.out, frame, previewRows, fmt.Sprintf("%s price history (first %d rows)", req.Ticker, previewRows))
	report.Summarize(hu.out, frame, req.Ticker+" price history")
	return path, nil
}

// ToFrame はPriceHistoryをCSV用の表に変換します。欠損値は空セルになります。
func ToFrame(h entity.PriceHistory) report.Frame {
	cols := []string{"Date", "Open", "High", "Low", "Close"}
	if h.HasAdjClose {
		cols = append(cols, "Adj Close")
	}
	cols = append(cols, "Volume")

	rows := make([][]string, 0, len(h.Rows))
	for _, r := range h.Rows {
		row := []string{h.FormatTime(r.Time), formatPrice(r.Open), formatPrice(r.High), formatPrice(r.Low), formatPrice(r.Close)}
		if h.HasAdjClose {
			row = append(row, formatPrice(r.AdjClose))
		}
		row = append(row, strconv.FormatInt(r.Volume, 10))
		rows = append(rows, row)
	}
	return report.Frame{Columns: cols, Rows: rows}
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
