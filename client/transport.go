package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/elnormous/contenttype"

	model "github.com/stenstromen/bioportal/model"
)

// Reply is a decoded ServiceResponse plus the body it was decoded from.
type Reply struct {
	Response model.ServiceResponse
	Body     []byte
}

// Transport posts a JSON payload to path and decodes the envelope. Any
// returned error is a transport failure: the request did not complete or the
// body was not JSON. HTTP status codes are not errors; the envelope decides.
type Transport interface {
	Post(ctx context.Context, path string, payload any) (Reply, error)
}

type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport talks to baseURL. The client keeps cookies so the backend's
// session follows the saved token; it has no timeout of its own.
func NewHTTPTransport(baseURL string) (*HTTPTransport, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return NewHTTPTransportWithClient(baseURL, &http.Client{Jar: jar}), nil
}

func NewHTTPTransportWithClient(baseURL string, c *http.Client) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  c,
	}
}

func (t *HTTPTransport) Post(ctx context.Context, path string, payload any) (Reply, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return Reply{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("read response: %w", err)
	}

	// The media type only enriches the error; the body alone decides.
	var sr model.ServiceResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return Reply{}, fmt.Errorf("decode response (status %d, content type %s): %w",
			resp.StatusCode, mediaTypeOf(resp), err)
	}
	return Reply{Response: sr, Body: body}, nil
}

func mediaTypeOf(resp *http.Response) string {
	mt := contenttype.NewMediaType(resp.Header.Get("Content-Type"))
	if mt.Type == "" {
		return "none"
	}
	return mt.Type + "/" + mt.Subtype
}
