// Package ratelimiter spaces out outgoing requests.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

// Limiter は、リクエストの頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、interval ごとに limit 回までの呼び出しを許可します。
// 上限を超えた呼び出しは次の区間が始まるまで待機します。
type RateLimiter struct {
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Waitはレートリミットの上限に達しているかを確認し、必要であれば待機します。
// 待機中にctxがキャンセルされた場合はctxのエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		wait := rl.interval - now.Sub(rl.lastReset)
		if wait > 0 {
			slog.Debug("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
			if err := rl.sleep(ctx, wait); err != nil {
				return err
			}
		}
		// リセット
		rl.count = 1
		rl.lastReset = rl.now()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
