package fbref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

var ErrBodyTooLarge = crerr.New("response body exceeds size limit")

// FetchHTML GETs pageURL, retrying failed attempts with linear backoff
// (BackoffBase * attempt). Every attempt uses a freshly picked identity.
// After the last failed attempt the error wraps fixture.ErrFetchFailed and the
// last underlying cause.
func (c *Client) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var body string
		err := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.fetchOnce(ctx, pageURL)
			return reqErr
		}, nil)
		if err == nil {
			if attempt > 1 {
				c.logger.InfoContext(ctx, "fbref fetch recovered", "attempt", attempt, "url", pageURL)
			}
			return body, nil
		}
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return "", c.rejected(ctx, pageURL, lastErr)
		}

		lastErr = err
		c.logger.WarnContext(ctx, "fbref fetch attempt failed",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"url", pageURL,
			"error", err,
		)
		if attempt == c.maxAttempts {
			break
		}
		if c.breaker.State() == resilience.CircuitStateOpen {
			return "", c.rejected(ctx, pageURL, lastErr)
		}

		if sleepErr := c.sleep(ctx, resilience.LinearBackoff(c.backoffBase, attempt)); sleepErr != nil {
			lastErr = sleepErr
			break
		}
	}

	return "", fmt.Errorf("%w: %w", fixture.ErrFetchFailed, lastErr)
}

// rejected ends the retry loop on an open breaker, keeping the last real
// failure in the chain when there was one.
func (c *Client) rejected(ctx context.Context, pageURL string, lastErr error) error {
	c.observer.ObserveFetchAttempt(OutcomeRejected)
	c.logger.WarnContext(ctx, "fbref circuit breaker rejected request", "state", c.breaker.State(), "url", pageURL)
	if lastErr == nil {
		return fmt.Errorf("%w: %w", fixture.ErrFetchFailed, resilience.ErrCircuitOpen)
	}
	return fmt.Errorf("%w: %w: %w", fixture.ErrFetchFailed, resilience.ErrCircuitOpen, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		c.observer.ObserveFetchAttempt(OutcomeTransport)
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.identities.Pick())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveFetchAttempt(OutcomeTransport)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.observer.ObserveFetchAttempt(OutcomeStatus)
		return "", fmt.Errorf("unexpected status %s for url: %s", resp.Status, pageURL)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, c.maxBodyBytes+1)); err != nil {
		c.observer.ObserveFetchAttempt(OutcomeRead)
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(buf.Len()) > c.maxBodyBytes {
		c.observer.ObserveFetchAttempt(OutcomeRead)
		return "", fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, c.maxBodyBytes, pageURL)
	}

	c.observer.ObserveFetchAttempt(OutcomeSuccess)
	return buf.String(), nil
}
