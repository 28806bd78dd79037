package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"

	"github.com/jonesrussell/jobtechs/internal/domain"
)

// maxResponseBodyBytes limits the size of page bodies we will read.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// httpStatusError is returned when a fetch completes with a non-200 status.
type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("http status %d %s", e.status, http.StatusText(e.status))
}

// contentTypeError is returned when a fetch yields a non-HTML response.
type contentTypeError struct {
	contentType string
}

func (e *contentTypeError) Error() string {
	return fmt.Sprintf("unsupported content type %q", e.contentType)
}

// fetchedPage holds a successfully fetched page body along with the final
// URL after redirects, which extractors dispatch on.
type fetchedPage struct {
	body     []byte
	finalURL *url.URL
}

// fetchWithRetry holds a politeness slot for the URL's host and fetches
// the page, retrying transient failures with exponential backoff. The slot
// is held across retry attempts so a flapping host is never hit by more
// than its share of concurrent requests.
func (c *Coordinator) fetchWithRetry(ctx context.Context, jobURL *domain.JobURL) (*fetchedPage, error) {
	release, acquireErr := c.throttle.Acquire(ctx, jobURL.HostKey)
	if acquireErr != nil {
		return nil, fmt.Errorf("acquire host slot: %w", acquireErr)
	}
	defer release()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.RetryInitialWait
	policy.MaxInterval = c.cfg.RetryMaxWait

	var page *fetchedPage

	operation := func() error {
		attempt, attemptErr := c.fetchOnce(ctx, jobURL)
		if attemptErr != nil {
			var ctErr *contentTypeError
			if errors.Is(attemptErr, ErrTooManyRedirects) || errors.As(attemptErr, &ctErr) {
				return backoff.Permanent(attemptErr)
			}
			return attemptErr
		}

		page = attempt
		return nil
	}

	retryErr := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.cfg.MaxRetries)), ctx))
	if retryErr != nil {
		return nil, retryErr
	}

	return page, nil
}

// fetchOnce performs a single GET attempt for the URL.
func (c *Coordinator) fetchOnce(ctx context.Context, jobURL *domain.JobURL) (*fetchedPage, error) {
	// Detach the request from run cancellation so an in-flight fetch
	// completes or times out on its own. New attempts still stop promptly
	// via the retry loop and the worker select.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.RequestTimeout)
	defer cancel()

	req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodGet, jobURL.Raw, http.NoBody)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %w", reqErr)
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, doErr := c.client.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("http fetch: %w", doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &httpStatusError{status: resp.StatusCode}
		if isRetryableStatus(resp.StatusCode) {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, &contentTypeError{contentType: contentType}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	reader, charsetErr := charset.NewReader(limited, contentType)
	if charsetErr != nil {
		// Unknown charset: fall back to the raw bytes.
		reader = limited
	}

	body, readErr := io.ReadAll(reader)
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}

	return &fetchedPage{body: body, finalURL: resp.Request.URL}, nil
}

// isRetryableStatus reports whether a status code indicates a transient
// condition worth retrying. Other non-200 statuses fail immediately.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// isHTMLContentType reports whether a Content-Type header names an HTML
// document. A missing header is treated as HTML.
func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}

	mediaType, _, parseErr := mime.ParseMediaType(contentType)
	if parseErr != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
