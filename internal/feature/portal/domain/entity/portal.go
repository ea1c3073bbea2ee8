// Package entity defines the rows scraped from the news portal snapshot.
package entity

// MarketCardEntry is one market card of the portal banner.
type MarketCardEntry struct {
	Symbol        string
	Position      string
	ChangePercent string
}

// NoTimestamp is used when a news item carries no timestamp element.
const NoTimestamp = "no timestamp"

// NewsItem is one headline of the latest news list.
type NewsItem struct {
	Timestamp string
	Title     string
	Link      string
}

// MarketCardHeader is the column header of market_data.csv.
var MarketCardHeader = []string{"marketCard_symbol", "marketCard_stockPosition", "marketCard_changesPct"}

// NewsHeader is the column header of news_data.csv.
var NewsHeader = []string{"LatestNews_timestamp", "title", "link"}

// Record returns the CSV cells of the entry in header order.
func (m MarketCardEntry) Record() []string {
	return []string{m.Symbol, m.Position, m.ChangePercent}
}

// Record returns the CSV cells of the item in header order.
func (n NewsItem) Record() []string {
	return []string{n.Timestamp, n.Title, n.Link}
}
