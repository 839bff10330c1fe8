// Package httputil provides the HTTP client used by remote task sources.
//
// # Overview
//
//   - [Client]: JSON GET with retry and observability hooks
//   - [Retry]: automatic retry with exponential backoff
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. [Client] marks
// network failures, 5xx responses, and 429 rate limits as retryable; every
// other status fails immediately:
//
//	c := httputil.NewClient(nil)
//	var tasks []task.Task
//	err := c.GetJSON(ctx, "https://tasks.example.com/api/tasks/", &tasks)
//
// # Configuration
//
//   - Timeout: 30 seconds
//   - Attempts: 3
//   - Base backoff: 1 second, doubling each retry
package httputil
