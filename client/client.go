// Package client is a generic client for the admin system API: typed
// list/get queries with query-key caching and request coalescing, and
// mutations with explicit optimistic-update transactions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	sessionTokenHeader = "X-DreamFactory-Session-Token"
	apiKeyHeader       = "X-DreamFactory-API-Key"
)

// Client talks to one API instance. Safe for concurrent use; the
// session token may be swapped at any time via SetSessionToken.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string

	mu           sync.RWMutex
	sessionToken string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithSessionToken(token string) Option {
	return func(c *Client) { c.sessionToken = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSessionToken replaces the token sent on subsequent requests,
// typically after login or refresh.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

// getRaw performs a single GET and returns the response body. No
// retries happen at this layer.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query)
}

// sendJSON performs a single write request, decoding a JSON response
// into out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &APIError{Kind: KindUnknown, Message: "encode request: " + err.Error()}
		}
		body = bytes.NewReader(buf)
	}
	raw, err := c.doBody(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindUnknown, Message: "decode response: " + err.Error()}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	return c.doBody(ctx, method, path, query, nil)
}

func (c *Client) doBody(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(sessionTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// decodeAPIError maps an error response onto the taxonomy, keeping the
// server message and context when the body carries the standard
// {error: {code, message, context}} envelope.
func decodeAPIError(status int, raw []byte) *APIError {
	ae := &APIError{
		Kind:    classifyStatus(status),
		Status:  status,
		Message: http.StatusText(status),
	}

	var envelope struct {
		Error struct {
			Code    int            `json:"code"`
			Message string         `json:"message"`
			Context map[string]any `json:"context"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		ae.Message = envelope.Error.Message
		ae.Context = envelope.Error.Context
	}
	return ae
}
