// Package ratelimit paces requests sent to the target site.
//
// TokenBucket wraps golang.org/x/time/rate. NewPerMinute builds the pacer
// used by the fetcher from the requests_per_minute setting:
//
//	limiter := ratelimit.NewPerMinute(cfg.HTTP.RequestsPerMinute)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
package ratelimit
