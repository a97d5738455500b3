package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/bytedance/sonic"
)

const bodyPreview = 300

// HTTPError is a non-2xx answer. Body holds the decoded response body.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, preview(e.Body))
}

func preview(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > bodyPreview {
		return s[:bodyPreview] + "..."
	}
	return s
}

// RetryConfig bounds how hard a call tries. Every 5xx is retried, as are
// the statuses in RetryStatuses.
type RetryConfig struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration // also caps Retry-After
	RetryStatuses []int
}

// DefaultRetryConfig suits interactive lookups: a few quick attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		BaseDelay:     250 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		RetryStatuses: []int{http.StatusRequestTimeout, http.StatusTooManyRequests},
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = def.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	return c
}

func (c RetryConfig) retryStatus(code int) bool {
	return code >= 500 || slices.Contains(c.RetryStatuses, code)
}

// delay is the wait before the next attempt: the server's Retry-After when
// given, exponential backoff with up to 100ms jitter otherwise.
func (c RetryConfig) delay(attempt int, retryAfter time.Duration) time.Duration {
	d := retryAfter
	if d <= 0 {
		d = c.BaseDelay<<(attempt-1) + rand.N(100*time.Millisecond)
	}
	return min(d, c.MaxDelay)
}

// RequestFunc builds a fresh request for every attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Do sends the request until it succeeds, fails permanently or runs out of
// attempts, and returns the decoded body of the 2xx answer.
func Do(ctx context.Context, client *http.Client, build RequestFunc, cfg RetryConfig) ([]byte, error) {
	cfg = cfg.withDefaults()

	var err error
	for attempt := 1; ; attempt++ {
		var (
			body       []byte
			retry      bool
			retryAfter time.Duration
		)
		body, retry, retryAfter, err = roundTrip(ctx, client, build, cfg)
		if err == nil {
			return body, nil
		}
		if !retry || attempt >= cfg.MaxAttempts {
			return nil, err
		}
		if werr := wait(ctx, cfg.delay(attempt, retryAfter)); werr != nil {
			return nil, werr
		}
	}
}

func roundTrip(ctx context.Context, client *http.Client, build RequestFunc, cfg RetryConfig) ([]byte, bool, time.Duration, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, false, 0, err
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "br")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, transient(err), 0, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, transient(err), 0, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, false, 0, nil
	}

	herr := &HTTPError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	return nil, cfg.retryStatus(resp.StatusCode), retryAfter(resp.Header), herr
}

// readBody drains and closes the body so the connection can be reused.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(resp.Header.Get("Content-Encoding")), "br") {
		return raw, nil
	}
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("httpx: brotli decode: %w", err)
	}
	return decoded, nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// transient reports whether a transport error is worth another attempt.
// Cancellation and an expired caller deadline are final.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe")
}

// retryAfter reads Retry-After as seconds or an HTTP date; 0 when absent.
func retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(time.Until(t), 0)
	}
	return 0
}

// DoJSON runs Do and decodes the body into out. A nil out skips decoding.
func DoJSON(ctx context.Context, client *http.Client, build RequestFunc, out any, cfg RetryConfig) error {
	body, err := Do(ctx, client, build, cfg)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpx: decode json: %w: %s", err, preview(body))
	}
	return nil
}
