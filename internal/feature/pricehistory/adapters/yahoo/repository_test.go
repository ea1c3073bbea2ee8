package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data_explorer/internal/shared/apperr"
)

const dailyBody = `{
	"chart": {
		"result": [{
			"meta": {"symbol": "AAPL", "currency": "USD", "exchangeTimezoneName": "America/New_York", "gmtoffset": -18000},
			"timestamp": [1704292200, 1704205800, 1704378600],
			"indicators": {
				"quote": [{
					"open":   [184.22, 187.15, null],
					"high":   [185.88, 188.44, null],
					"low":    [183.43, 183.89, null],
					"close":  [184.25, 185.64, null],
					"volume": [58414500, 82488700, null]
				}],
				"adjclose": [{"adjclose": [183.15, 184.53, null]}]
			}
		}],
		"error": null
	}
}`

func newTestMarket(server *httptest.Server) *YahooMarket {
	cfg := LoadConfig()
	cfg.BaseURL = server.URL
	return NewYahooMarket(cfg, server.Client())
}

func TestNewYahooMarket(t *testing.T) {
	t.Parallel()

	cfg := LoadConfig()
	market := NewYahooMarket(cfg, &http.Client{})

	require.NotNil(t, market)
	assert.Equal(t, "https://query1.finance.yahoo.com", market.cfg.BaseURL)
}

// TestYahooMarket_GetHistory_Success はクエリパラメータ・欠損バーの除外・昇順ソートを検証します。
func TestYahooMarket_GetHistory_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1y", q.Get("range"))
		assert.Equal(t, "1d", q.Get("interval"))
		assert.Equal(t, "true", q.Get("includeAdjustedClose"))
		assert.Equal(t, "div,splits", q.Get("events"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyBody))
	}))
	defer server.Close()

	h, err := newTestMarket(server).GetHistory(context.Background(), "AAPL", "1y", "1d")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", h.Ticker)
	assert.True(t, h.HasAdjClose)
	assert.False(t, h.Intraday)
	require.Len(t, h.Rows, 2)

	assert.Equal(t, "2024-01-02", h.FormatTime(h.Rows[0].Time))
	assert.Equal(t, 187.15, h.Rows[0].Open)
	assert.Equal(t, 184.53, h.Rows[0].AdjClose)
	assert.Equal(t, int64(82488700), h.Rows[0].Volume)
	assert.Equal(t, "2024-01-03", h.FormatTime(h.Rows[1].Time))
	assert.Equal(t, 184.25, h.Rows[1].Close)
}

// TestYahooMarket_GetHistory_Intraday は分足で調整後終値が無い場合の挙動を検証します。
func TestYahooMarket_GetHistory_Intraday(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"meta": {"exchangeTimezoneName": "America/New_York", "gmtoffset": -18000},
			"timestamp": [1704205800],
			"indicators": {"quote": [{"open": [187.15], "high": [187.5], "low": [186.9], "close": [null], "volume": [null]}]}
		}], "error": null}}`))
	}))
	defer server.Close()

	h, err := newTestMarket(server).GetHistory(context.Background(), "AAPL", "5d", "15m")
	require.NoError(t, err)

	assert.True(t, h.Intraday)
	assert.False(t, h.HasAdjClose)
	require.Len(t, h.Rows, 1)
	assert.Equal(t, "2024-01-02 09:30:00-05:00", h.FormatTime(h.Rows[0].Time))
	assert.True(t, math.IsNaN(h.Rows[0].Close))
	assert.Zero(t, h.Rows[0].Volume)
}

// TestYahooMarket_GetHistory_Empty は結果が空の場合にエラーにならないことを検証します。
func TestYahooMarket_GetHistory_Empty(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"chart": {"result": [], "error": null}}`,
		`{"chart": {"result": [{"meta": {}, "indicators": {"quote": [{}]}}], "error": null}}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		h, err := newTestMarket(server).GetHistory(context.Background(), "AAPL", "1y", "1d")
		server.Close()

		require.NoError(t, err)
		assert.Empty(t, h.Rows)
	}
}

// TestYahooMarket_GetHistory_HTTPError はステータスコードとエラー本文の扱いを検証します。
func TestYahooMarket_GetHistory_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{"not found with description", http.StatusNotFound,
			`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
			"yahoo http 404: No data found, symbol may be delisted"},
		{"unauthorized plain", http.StatusUnauthorized, `Unauthorized`, "yahoo http 401"},
		{"internal server error", http.StatusInternalServerError, ``, "yahoo http 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestMarket(server).GetHistory(context.Background(), "AAPL", "1y", "1d")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrNetwork)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// TestYahooMarket_GetHistory_ProviderError は200応答内のエラーオブジェクトを検証します。
func TestYahooMarket_GetHistory_ProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input - interval=7d is not supported"}}}`))
	}))
	defer server.Close()

	_, err := newTestMarket(server).GetHistory(context.Background(), "AAPL", "1y", "7d")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "interval=7d is not supported"))
}

// TestYahooMarket_GetHistory_Timeout はタイムアウトがErrTimeoutとして報告されることを検証します。
func TestYahooMarket_GetHistory_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := LoadConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 50 * time.Millisecond

	_, err := NewYahooMarket(cfg, server.Client()).GetHistory(context.Background(), "AAPL", "1y", "1d")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrTimeout)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

func TestIsIntraday(t *testing.T) {
	t.Parallel()

	for interval, want := range map[string]bool{
		"1m": true, "15m": true, "90m": true, "1h": true,
		"1d": false, "5d": false, "1wk": false, "1mo": false, "3mo": false,
	} {
		assert.Equal(t, want, IsIntraday(interval), interval)
	}
}

// TestYahooMarket_GetHistory_ClientTimeout はhttp.Clientのタイムアウトが先に発火してもErrTimeoutになることを検証します。
func TestYahooMarket_GetHistory_ClientTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := LoadConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = 10 * time.Second
	client := server.Client()
	client.Timeout = 50 * time.Millisecond

	_, err := NewYahooMarket(cfg, client).GetHistory(context.Background(), "AAPL", "1y", "1d")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrTimeout)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}
