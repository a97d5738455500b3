package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"course-scanner/internal/httpx"
	"course-scanner/internal/validation"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

const DefaultURL = "https://backend-jet-nine.vercel.app/api/contact"

const (
	PurposeBusiness   = "business"
	PurposeIndividual = "individual"
)

// Message is the contact form payload.
type Message struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=business individual"`
	Message string `json:"message" validate:"required"`
}

func (m Message) normalized() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Purpose: strings.ToLower(strings.TrimSpace(m.Purpose)),
		Message: strings.TrimSpace(m.Message),
	}
}

type reply struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RejectedError is a non-2xx answer from the contact endpoint.
type RejectedError struct {
	StatusCode int
	Reason     string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("contact: rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact: rejected with status %d: %s", e.StatusCode, e.Reason)
}

type Client struct {
	URL   string
	HTTP  *http.Client
	Retry httpx.RetryConfig
	Log   zerolog.Logger
}

// New builds a contact client. Submissions are sent once: the endpoint is
// not idempotent.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := httpx.DefaultRetryConfig()
	retry.MaxAttempts = 1
	return &Client{
		URL:   url,
		HTTP:  &http.Client{Timeout: timeout},
		Retry: retry,
		Log:   zerolog.Nop(),
	}
}

// Submit validates m and posts it. It returns the server's confirmation text.
// Validation failures are returned before any request is made.
func (c *Client) Submit(ctx context.Context, m Message) (string, error) {
	m = m.normalized()
	if err := validation.Struct(m); err != nil {
		return "", err
	}

	payload, err := sonic.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("contact: encode: %w", err)
	}

	var out reply
	err = httpx.DoJSON(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", "application/json")
			r.Header.Set("Accept", "application/json")
			return r, nil
		},
		&out,
		c.Retry,
	)
	if err != nil {
		var herr *httpx.HTTPError
		if errors.As(err, &herr) {
			var body reply
			_ = sonic.Unmarshal(herr.Body, &body)
			rerr := &RejectedError{StatusCode: herr.StatusCode, Reason: body.Error}
			c.Log.Warn().Err(rerr).Str("purpose", m.Purpose).Msg("contact form rejected")
			return "", rerr
		}
		c.Log.Error().Err(err).Msg("contact form submit failed")
		return "", fmt.Errorf("contact: submit: %w", err)
	}

	c.Log.Info().Str("purpose", m.Purpose).Msg("contact form sent")
	return out.Message, nil
}
