// Package upstream forwards bio updates to the external profile API on behalf
// of a stored token.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent      = "BioPortal/1.0"
	requestTimeout = 10 * time.Second
	maxTextExcerpt = 400
)

// Result is the upstream reply. Body is the upstream JSON when it parsed,
// otherwise {"status_code":...,"text":...}.
type Result struct {
	OK   bool
	Body json.RawMessage
}

type Client struct {
	targetURL string
	http      *http.Client
	now       func() time.Time
}

// New returns a client for targetURL. An empty targetURL puts the client in
// mock mode: no request is made and a synthetic success is returned.
func New(targetURL string) *Client {
	return &Client{
		targetURL: targetURL,
		http:      &http.Client{Timeout: requestTimeout},
		now:       time.Now,
	}
}

func (c *Client) Mock() bool { return c.targetURL == "" }

// UpdateBio returns an error only when the request could not be completed.
func (c *Client) UpdateBio(ctx context.Context, accessToken, bio string) (Result, error) {
	if c.Mock() {
		body, err := json.Marshal(map[string]string{
			"status":     "ok",
			"bio":        bio,
			"updated_at": c.now().UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return Result{}, err
		}
		return Result{OK: true, Body: body}, nil
	}

	payload, err := json.Marshal(map[string]string{"bio": bio})
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.targetURL, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read upstream response: %w", err)
	}

	res := Result{OK: resp.StatusCode >= 200 && resp.StatusCode < 300}
	if json.Valid(raw) && len(bytes.TrimSpace(raw)) > 0 {
		res.Body = raw
		return res, nil
	}

	text := excerpt(string(raw), maxTextExcerpt)
	res.Body, err = json.Marshal(struct {
		StatusCode int    `json:"status_code"`
		Text       string `json:"text"`
	}{resp.StatusCode, text})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// excerpt keeps the first n runes of s.
func excerpt(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
