// Package entity defines the price-series types returned by providers.
package entity

import (
	"math"
	"time"
)

// PriceRow is one bar of a price series. Missing prices are NaN.
type PriceRow struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// Empty reports whether open, high, low and close are all missing.
func (r PriceRow) Empty() bool {
	return math.IsNaN(r.Open) && math.IsNaN(r.High) && math.IsNaN(r.Low) && math.IsNaN(r.Close)
}

// PriceHistory is the price series of one ticker in ascending time order.
type PriceHistory struct {
	Ticker      string
	Interval    string
	Rows        []PriceRow
	HasAdjClose bool           // false when the provider returned no adjusted close
	Intraday    bool           // bars shorter than one day
	Location    *time.Location // exchange time zone
}

// DateLayout returns the layout used to print row times.
func (h PriceHistory) DateLayout() string {
	if h.Intraday {
		return "2006-01-02 15:04:05-07:00"
	}
	return "2006-01-02"
}

// FormatTime prints t in the exchange time zone.
func (h PriceHistory) FormatTime(t time.Time) string {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(h.DateLayout())
}
