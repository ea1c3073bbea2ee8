// Package dto defines data transfer objects for the Yahoo Finance chart API.
package dto

// ChartResponse represents the JSON response of the v8 chart endpoint.
// Price and volume arrays may contain nulls.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError is the provider's error object.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is the series of one symbol: exchange metadata, bar
// timestamps (Unix seconds) and the parallel quote arrays.
type ChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
		DataGranularity      string `json:"dataGranularity"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}
