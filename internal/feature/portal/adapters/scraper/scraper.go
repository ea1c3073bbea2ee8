// Package scraper はポータルのスナップショットから固定のクラスセレクタで
// マーケットカードとニュース見出しを抽出します。
package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"data_explorer/internal/feature/portal/domain/entity"
	"data_explorer/internal/platform/textutil"
	"data_explorer/internal/shared/apperr"
	"data_explorer/internal/shared/result"
)

// Selectors of the portal markup.
const (
	marketBannerSelector    = "div.MarketsBanner-main"
	marketDataSelector      = "div.MarketsBanner-marketData"
	marketCardSelector      = `a[class*="MarketCard-container"]`
	marketRowSelector       = "div.MarketCard-row"
	marketSymbolSelector    = "span.MarketCard-symbol"
	marketPositionSelector  = "span.MarketCard-stockPosition"
	marketChangeSelector    = "div.MarketCard-changeData"
	marketChangePctSelector = "span.MarketCard-changesPct"

	newsListSelector      = "ul.LatestNews-list"
	newsItemSelector      = "li.LatestNews-item"
	newsContainerSelector = "div.LatestNews-container"
	newsWrapperSelector   = "div.LatestNews-headlineWrapper"
	newsTimeSelector      = "time.LatestNews-timestamp"
	newsHeadlineSelector  = "a.LatestNews-headline"
)

// ScrapeMarketCards はマーケットバナー内のカードを文書順に抽出します。
// バナーが見つからない場合は ErrMalformedDocument を返します。
// 要素が欠けたカードは失敗したResultになります。
func ScrapeMarketCards(doc *goquery.Document) ([]result.Result[entity.MarketCardEntry], error) {
	container := doc.Find(marketBannerSelector).First().Find(marketDataSelector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: no market data container", apperr.ErrMalformedDocument)
	}

	var out []result.Result[entity.MarketCardEntry]
	container.Find(marketCardSelector).Each(func(i int, card *goquery.Selection) {
		out = append(out, scrapeCard(i, card))
	})
	return out, nil
}

func scrapeCard(i int, card *goquery.Selection) result.Result[entity.MarketCardEntry] {
	rows := card.Find(marketRowSelector)
	if rows.Length() < 2 {
		return result.Fail[entity.MarketCardEntry](fmt.Errorf("%w: card %d: expected 2 rows, found %d", apperr.ErrMalformedDocument, i, rows.Length()))
	}
	first, second := rows.Eq(0), rows.Eq(1)

	symbol, err := required(first, marketSymbolSelector, i)
	if err != nil {
		return result.Fail[entity.MarketCardEntry](err)
	}
	position, err := required(first, marketPositionSelector, i)
	if err != nil {
		return result.Fail[entity.MarketCardEntry](err)
	}
	change := second.Find(marketChangeSelector).First()
	if change.Length() == 0 {
		return result.Fail[entity.MarketCardEntry](fmt.Errorf("%w: card %d: missing %s", apperr.ErrMalformedDocument, i, marketChangeSelector))
	}
	pct, err := required(change, marketChangePctSelector, i)
	if err != nil {
		return result.Fail[entity.MarketCardEntry](err)
	}

	return result.Ok(entity.MarketCardEntry{Symbol: symbol, Position: position, ChangePercent: pct})
}

func required(parent *goquery.Selection, selector string, i int) (string, error) {
	sel := parent.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: card %d: missing %s", apperr.ErrMalformedDocument, i, selector)
	}
	return textutil.StrippedText(sel, ""), nil
}

// ScrapeNews はニュース一覧の見出しを文書順に抽出します。
// 一覧が見つからない場合は ErrMalformedDocument を返します。
// 見出しリンクが欠けた項目は失敗したResultになります。
func ScrapeNews(doc *goquery.Document) ([]result.Result[entity.NewsItem], error) {
	list := doc.Find(newsListSelector).First()
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: no latest news list", apperr.ErrMalformedDocument)
	}

	var out []result.Result[entity.NewsItem]
	list.Find(newsItemSelector).Each(func(i int, item *goquery.Selection) {
		out = append(out, scrapeNewsItem(i, item))
	})
	return out, nil
}

func scrapeNewsItem(i int, item *goquery.Selection) result.Result[entity.NewsItem] {
	wrapper := item.Find(newsContainerSelector).First().Find(newsWrapperSelector).First()
	if wrapper.Length() == 0 {
		return result.Fail[entity.NewsItem](fmt.Errorf("%w: news item %d: missing headline wrapper", apperr.ErrMalformedDocument, i))
	}
	link := wrapper.Find(newsHeadlineSelector).First()
	if link.Length() == 0 {
		return result.Fail[entity.NewsItem](fmt.Errorf("%w: news item %d: missing headline link", apperr.ErrMalformedDocument, i))
	}

	ts := entity.NoTimestamp
	if tm := wrapper.Find(newsTimeSelector).First(); tm.Length() > 0 {
		ts = textutil.StrippedText(tm, "")
	}
	title, _ := link.Attr("title")
	href, _ := link.Attr("href")
	return result.Ok(entity.NewsItem{Timestamp: ts, Title: title, Link: href})
}
