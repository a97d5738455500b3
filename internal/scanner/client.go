package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-scanner/internal/apperrors"
	"course-scanner/internal/domain"
	"course-scanner/internal/httpx"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	acceptJSON      = "application/json"
	requestIDHeader = "X-Request-Id"
	DefaultBaseURL  = "https://course-scanner-backend.vercel.app"
)

// Client talks to the course scanner catalog API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
	Log     zerolog.Logger
}

// New builds a client whose requests give up after timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tr := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		Retry: httpx.DefaultRetryConfig(),
		Log:   zerolog.Nop(),
	}
}

// BrandNames lists the catalog's brands in API order, skipping blank and
// duplicate entries.
func (c *Client) BrandNames(ctx context.Context) ([]string, error) {
	var out []domain.Brand
	if err := c.getJSON(ctx, "brandnames", c.BaseURL+"/brandnames", &out); err != nil {
		return nil, fmt.Errorf("scanner: list brands failed: %w", err)
	}

	names := make([]string, 0, len(out))
	seen := make(map[string]bool, len(out))
	for _, b := range out {
		name := strings.TrimSpace(b.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// CourseNames fetches the raw, brand scoped course list. Callers dedupe and
// order it.
func (c *Client) CourseNames(ctx context.Context, brand string) ([]domain.Course, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return nil, fmt.Errorf("scanner: course names: %w", apperrors.ErrEmptyBrand)
	}

	var out []courseRecord
	u := c.BaseURL + "/coursename/" + url.PathEscape(brand)
	if err := c.getJSON(ctx, "coursename", u, &out); err != nil {
		return nil, fmt.Errorf("scanner: course names for %q failed: %w", brand, err)
	}
	return toCourses(out), nil
}

// Search runs the structured search behind the home page form.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Course, error) {
	var out []courseRecord
	u := c.BaseURL + "/search?" + q.Encode()
	if err := c.getJSON(ctx, "search", u, &out); err != nil {
		return nil, fmt.Errorf("scanner: search failed: %w", err)
	}
	return toCourses(out), nil
}

// SearchByName runs the free-text course name search.
func (c *Client) SearchByName(ctx context.Context, courseName string) ([]domain.Course, error) {
	q := url.Values{}
	q.Set("course_name", strings.TrimSpace(courseName))

	var out []courseRecord
	u := c.BaseURL + "/searchcourse?" + q.Encode()
	if err := c.getJSON(ctx, "searchcourse", u, &out); err != nil {
		return nil, fmt.Errorf("scanner: search by name %q failed: %w", courseName, err)
	}
	return toCourses(out), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, u string, out any) error {
	reqID := uuid.NewString()
	start := time.Now()
	err := httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept", acceptJSON)
			r.Header.Set(requestIDHeader, reqID)
			return r, nil
		},
		out,
		c.Retry,
	)
	observe(endpoint, start, err)

	if err != nil {
		c.Log.Warn().Err(err).Str("endpoint", endpoint).Str("request_id", reqID).Msg("catalog request failed")
		return err
	}
	c.Log.Debug().Str("endpoint", endpoint).Str("request_id", reqID).Dur("took", time.Since(start)).Msg("catalog request done")
	return nil
}
