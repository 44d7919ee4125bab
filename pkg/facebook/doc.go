// Package facebook fetches public Facebook pages over HTTP.
//
// The Client sends a browser-like header set, waits on an optional pacing
// limiter before each request, routes through an optional proxy and retries
// rate-limit and server errors with backoff:
//
//	client := facebook.NewClient(facebook.Options{
//		Timeout:    25 * time.Second,
//		MaxRetries: 3,
//	})
//	markup, err := client.Fetch(ctx, "https://www.facebook.com/Formula1/reels")
package facebook
