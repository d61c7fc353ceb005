// Package httputil provides the retry policy shared by HTTP layout store
// clients.
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// failure was marked transient by wrapping it in [RetryableError]. Use
// [CheckStatus] to turn an HTTP response status into the right error:
//
//   - 2xx: nil
//   - 404: [ErrNotFound]
//   - 408, 429, 5xx: a [RetryableError]
//   - anything else: a permanent [StatusError]
//
// Typical use:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckStatus(resp)
//	})
package httputil
