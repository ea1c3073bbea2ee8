// Package http provides the outbound HTTP stack: a tuned *http.Client and a
// document fetcher built on it.
package http

import (
	"net"
	"net/http"
	"time"
)

// Transport limits for a short-lived CLI that talks to a handful of hosts,
// one request at a time.
const (
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 20 * time.Second
	idleConnTimeout       = 30 * time.Second
	maxIdleConnsPerHost   = 2
)

// NewHTTPClient は1回の実行で数件だけ取得するCLI向けのHTTPクライアントを作成します。
//
// timeout はリクエスト全体の上限です。応答ヘッダが responseHeaderTimeout 以内に
// 届かないサーバーは、本文のダウンロード時間に関係なく早めに打ち切ります。
// 0 以下の timeout は上限なしとして扱い、リクエストごとの期限は呼び出し側の context に任せます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	headerTimeout := responseHeaderTimeout
	if timeout > 0 && timeout < headerTimeout {
		headerTimeout = timeout
	}

	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: dialTimeout,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: headerTimeout,
		ExpectContinueTimeout: time.Second,
	}
	if timeout < 0 {
		timeout = 0
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
