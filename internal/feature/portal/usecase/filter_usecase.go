// Package usecase implements the portal snapshot and filter flow.
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"

	"data_explorer/internal/feature/portal/adapters/scraper"
	"data_explorer/internal/feature/portal/domain/entity"
	"data_explorer/internal/platform/outfile"
	"data_explorer/internal/shared/result"
)

const (
	MarketDataFile = "market_data.csv"
	NewsDataFile   = "news_data.csv"
)

// FilterRequest はスナップショットの入力パスとCSVの出力先です。
type FilterRequest struct {
	Input  string
	OutDir string
}

// FilterResult は書き出した行数です。
type FilterResult struct {
	MarketCards int
	News        int
}

// FilterUsecase は保存済みスナップショットからマーケットカードとニュースを抽出しCSVに保存します。
type FilterUsecase struct{}

// NewFilterUsecase は新しい FilterUsecase を作成します。
func NewFilterUsecase() *FilterUsecase {
	return &FilterUsecase{}
}

// Run はスナップショットを読み込み、2つのCSVを書き出します。
// 個々の項目やコンテナの欠落はログに記録して処理を続けます。
func (fu *FilterUsecase) Run(_ context.Context, req FilterRequest) (FilterResult, error) {
	slog.Info("loading html file", "path", req.Input)
	raw, err := os.ReadFile(req.Input)
	if err != nil {
		return FilterResult{}, fmt.Errorf("read snapshot: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return FilterResult{}, fmt.Errorf("parse snapshot: %w", err)
	}

	slog.Info("start filtering market data")
	cardResults, err := scraper.ScrapeMarketCards(doc)
	if err != nil {
		slog.Warn("no market data", "error", err)
	}
	cards := collect(cardResults, "market card")
	cardRows := make([][]string, 0, len(cards))
	for _, c := range cards {
		cardRows = append(cardRows, c.Record())
	}
	slog.Info("found market entries", "count", len(cards))
	if err := outfile.WriteCSV(filepath.Join(req.OutDir, MarketDataFile), entity.MarketCardHeader, cardRows); err != nil {
		return FilterResult{}, err
	}

	slog.Info("start filtering latest news")
	newsResults, err := scraper.ScrapeNews(doc)
	if err != nil {
		slog.Warn("no latest news", "error", err)
	}
	news := collect(newsResults, "news item")
	newsRows := make([][]string, 0, len(news))
	for _, n := range news {
		newsRows = append(newsRows, n.Record())
	}
	slog.Info("found news entries", "count", len(news))
	if err := outfile.WriteCSV(filepath.Join(req.OutDir, NewsDataFile), entity.NewsHeader, newsRows); err != nil {
		return FilterResult{}, err
	}

	slog.Info("data filtering completed", "market_cards", len(cards), "news", len(news))
	return FilterResult{MarketCards: len(cards), News: len(news)}, nil
}

// collect は成功した値を返し、失敗はログに記録して読み飛ばします。
func collect[T any](rs []result.Result[T], kind string) []T {
	values, errs := result.Partition(rs)
	for _, err := range errs {
		slog.Warn("skipping "+kind, "error", err)
	}
	return values
}
