package yahoo

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"data_explorer/internal/feature/pricehistory/adapters/yahoo/dto"
	"data_explorer/internal/feature/pricehistory/domain/entity"
	"data_explorer/internal/feature/pricehistory/usecase"
	infrahttp "data_explorer/internal/platform/http"
	"data_explorer/internal/shared/apperr"
)

// YahooMarket はYahoo Financeのチャートエンドポイントから株価履歴を取得するPriceProvider実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがPriceProviderを実装していることをコンパイル時に検証します。
var _ usecase.PriceProvider = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetHistory はperiod(例: "1y")とinterval(例: "1d")で株価履歴を取得し、
// 日時の昇順に並べたPriceHistoryを返します。結果が空でもエラーにはしません。
func (y *YahooMarket) GetHistory(ctx context.Context, ticker, period, interval string) (entity.PriceHistory, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("range", period)
	q.Set("interval", interval)
	q.Set("includeAdjustedClose", "true")
	q.Set("events", "div,splits")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(ticker), q.Encode())

	if y.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.PriceHistory{}, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		// context の期限切れと http.Client.Timeout のどちらもタイムアウトとして扱う
		if infrahttp.IsTimeout(ctx, err) {
			return entity.PriceHistory{}, fmt.Errorf("%w: %w: yahoo %s", apperr.ErrNetwork, apperr.ErrTimeout, ticker)
		}
		return entity.PriceHistory{}, fmt.Errorf("%w: yahoo %s: %w", apperr.ErrNetwork, ticker, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body dto.ChartResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)

	if res.StatusCode >= 400 {
		if decodeErr == nil && body.Chart.Error != nil && body.Chart.Error.Description != "" {
			return entity.PriceHistory{}, fmt.Errorf("%w: yahoo http %d: %s", apperr.ErrNetwork, res.StatusCode, body.Chart.Error.Description)
		}
		return entity.PriceHistory{}, fmt.Errorf("%w: yahoo http %d", apperr.ErrNetwork, res.StatusCode)
	}
	if decodeErr != nil {
		return entity.PriceHistory{}, fmt.Errorf("decode yahoo response: %w", decodeErr)
	}
	if body.Chart.Error != nil {
		return entity.PriceHistory{}, fmt.Errorf("yahoo: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}

	history := entity.PriceHistory{
		Ticker:   ticker,
		Interval: interval,
		Intraday: IsIntraday(interval),
		Location: time.UTC,
	}
	if len(body.Chart.Result) == 0 {
		return history, nil
	}
	return toHistory(history, body.Chart.Result[0])
}

// toHistory はDTOをドメインエンティティに変換します。
func toHistory(h entity.PriceHistory, r dto.ChartResult) (entity.PriceHistory, error) {
	h.Location = exchangeLocation(r.Meta.ExchangeTimezoneName, r.Meta.GMTOffset)
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return h, nil
	}
	quote := r.Indicators.Quote[0]

	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 && len(r.Indicators.AdjClose[0].AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
		h.HasAdjClose = true
	}

	rows := make([]entity.PriceRow, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		row := entity.PriceRow{
			Time:     time.Unix(ts, 0).In(h.Location),
			Open:     at(quote.Open, i),
			High:     at(quote.High, i),
			Low:      at(quote.Low, i),
			Close:    at(quote.Close, i),
			AdjClose: at(adj, i),
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			row.Volume = *quote.Volume[i]
		}
		// 始値・高値・安値・終値がすべて欠損しているバーは除外
		if row.Empty() {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b entity.PriceRow) int {
		return cmp.Compare(a.Time.UnixNano(), b.Time.UnixNano())
	})
	h.Rows = rows
	return h, nil
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return math.NaN()
	}
	return *values[i]
}

// exchangeLocation resolves the exchange time zone, falling back to the
// fixed offset reported alongside it.
func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		slog.Debug("unknown exchange time zone, using fixed offset", "tz", name, "gmtoffset", gmtOffset)
	}
	if gmtOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(name, gmtOffset)
}

// IsIntraday reports whether interval denotes bars shorter than one day
// ("1m", "15m", "1h", "90m", ...).
func IsIntraday(interval string) bool {
	if strings.HasSuffix(interval, "mo") {
		return false
	}
	return strings.HasSuffix(interval, "m") || strings.HasSuffix(interval, "h")
}
