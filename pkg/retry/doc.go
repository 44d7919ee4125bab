// Package retry retries fetches that fail with transient errors.
//
// Only typed errors from pkg/errors whose type is retryable (network,
// rate_limit, server_error) are retried. Rate limiting uses a longer
// backoff than other failures.
//
//	html, err := retry.DoWithResult(ctx, func(ctx context.Context) (string, error) {
//	    return fetch(ctx, url)
//	}, &retry.Config{MaxAttempts: 3, Backoff: retry.NewErrorTypeBackoff()})
package retry
