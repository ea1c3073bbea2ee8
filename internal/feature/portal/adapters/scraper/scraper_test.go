package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data_explorer/internal/feature/portal/domain/entity"
	"data_explorer/internal/shared/apperr"
	"data_explorer/internal/shared/result"
)

func loadFixture(t *testing.T) *goquery.Document {
	t.Helper()
	f, err := os.Open("testdata/portal.html")
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func parse(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

// TestScrapeMarketCards は既知の値を持つカードが文書順に抽出されることを検証します。
func TestScrapeMarketCards(t *testing.T) {
	t.Parallel()

	rs, err := ScrapeMarketCards(loadFixture(t))
	require.NoError(t, err)
	require.Len(t, rs, 3)

	cards, errs := result.Partition(rs)
	assert.Equal(t, []entity.MarketCardEntry{
		{Symbol: "DJIA", Position: "39,512.84", ChangePercent: "+0.32%"},
		{Symbol: "S&P 500", Position: "5,222.68", ChangePercent: "-0.16%"},
	}, cards)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], apperr.ErrMalformedDocument)
}

// TestScrapeMarketCards_NoContainer はバナーが無い場合のソフトエラーを検証します。
func TestScrapeMarketCards_NoContainer(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no banner":           `<div class="Other"></div>`,
		"banner without data": `<div class="MarketsBanner-main"><div class="x"></div></div>`,
	}
	for name, html := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rs, err := ScrapeMarketCards(parse(t, html))
			assert.ErrorIs(t, err, apperr.ErrMalformedDocument)
			assert.Empty(t, rs)
		})
	}
}

// TestScrapeNews はリンクの無い項目がスキップされ、他の項目は抽出されることを検証します。
func TestScrapeNews(t *testing.T) {
	t.Parallel()

	rs, err := ScrapeNews(loadFixture(t))
	require.NoError(t, err)
	require.Len(t, rs, 3)

	items, errs := result.Partition(rs)
	assert.Equal(t, []entity.NewsItem{
		{Timestamp: "25 Min Ago", Title: "Stocks rise", Link: "https://www.cnbc.com/2024/05/10/stocks.html"},
		{Timestamp: entity.NoTimestamp, Title: "", Link: "https://www.cnbc.com/2024/05/10/oil.html"},
	}, items)
	require.Len(t, errs, 1)
	assert.False(t, rs[1].IsOk())
}

// TestScrapeNews_MissingWrapper は見出しラッパーが無い項目の扱いを検証します。
func TestScrapeNews_MissingWrapper(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<ul class="LatestNews-list">
<li class="LatestNews-item"><div class="LatestNews-container"></div></li>
<li class="LatestNews-item"><div class="LatestNews-container"><div class="LatestNews-headlineWrapper">
<a class="LatestNews-headline" href="/a" title="A">A</a></div></div></li>
</ul>`)

	rs, err := ScrapeNews(doc)
	require.NoError(t, err)

	items, errs := result.Partition(rs)
	assert.Equal(t, []entity.NewsItem{{Timestamp: entity.NoTimestamp, Title: "A", Link: "/a"}}, items)
	assert.Len(t, errs, 1)
}

// TestScrapeNews_NoList は一覧が無い場合のソフトエラーを検証します。
func TestScrapeNews_NoList(t *testing.T) {
	t.Parallel()

	rs, err := ScrapeNews(parse(t, `<ul class="Other"></ul>`))
	assert.ErrorIs(t, err, apperr.ErrMalformedDocument)
	assert.Empty(t, rs)
}
