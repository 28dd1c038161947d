package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/team33/casino-gateway/internal/config"
)

// GenericNetworkError replaces transport and parse failures so raw error
// internals never reach the UI.
const GenericNetworkError = "Network error. Please try again."

// TokenSource supplies the bearer token for outgoing requests. An empty
// string means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed TokenSource, mostly for tests
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

// Result is the uniform envelope every call resolves to, on both transport
// and application errors. Callers branch on Success; Do never returns a Go
// error.
type Result struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	StatusCode int             `json:"-"`
}

// Decode unmarshals the data payload into dest
func (r *Result) Decode(dest any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response data")
	}
	return json.Unmarshal(r.Data, dest)
}

// Client wraps the external admin backend. Two base URLs: the admin API
// proper (/auth, /games, /promotions) and the same-origin proxy prefix the
// wallet endpoints live behind (/api/...).
type Client struct {
	adminBase  string
	proxyBase  string
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		adminBase: strings.TrimRight(cfg.AdminAPIBaseURL, "/"),
		proxyBase: strings.TrimRight(cfg.AdminProxyURL, "/"),
		tokens:    tokens,
		// No explicit timeout and no retries: a failed call falls back to
		// the local cache exactly once at the service layer.
		httpClient: &http.Client{},
	}
}

// Get issues a GET against the admin API base
func (c *Client) Get(ctx context.Context, path string) *Result {
	return c.do(ctx, http.MethodGet, c.adminBase+path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPost, c.adminBase+path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPut, c.adminBase+path, body)
}

func (c *Client) Delete(ctx context.Context, path string) *Result {
	return c.do(ctx, http.MethodDelete, c.adminBase+path, nil)
}

// ProxyGet issues a GET against the same-origin proxy base (wallet paths)
func (c *Client) ProxyGet(ctx context.Context, path string) *Result {
	return c.do(ctx, http.MethodGet, c.proxyBase+path, nil)
}

func (c *Client) ProxyPost(ctx context.Context, path string, body any) *Result {
	return c.do(ctx, http.MethodPost, c.proxyBase+path, body)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) *Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Printf("[ADMIN-API] Failed to marshal request body for %s %s: %v", method, rawURL, err)
			return &Result{Success: false, Message: GenericNetworkError}
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		log.Printf("[ADMIN-API] Failed to create request %s %s: %v", method, rawURL, err)
		return &Result{Success: false, Message: GenericNetworkError}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[ADMIN-API] Request failed: %s %s: %v", method, rawURL, err)
		return &Result{Success: false, Message: GenericNetworkError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[ADMIN-API] Failed to read response: %s %s: %v", method, rawURL, err)
		return &Result{Success: false, Message: GenericNetworkError, StatusCode: resp.StatusCode}
	}

	// A blocked or misrouted request often answers with an HTML error page.
	// Never show that to the UI.
	if looksLikeHTML(resp.Header.Get("Content-Type"), raw) {
		log.Printf("[ADMIN-API] Non-JSON response: %s %s status=%d", method, rawURL, resp.StatusCode)
		return &Result{Success: false, Message: GenericNetworkError, StatusCode: resp.StatusCode}
	}

	return normalize(resp.StatusCode, raw)
}

// normalize maps any JSON body onto the uniform envelope. Backends answer
// either the envelope itself or a bare data payload; a bare payload on a 2xx
// becomes Success=true with the body as data.
func normalize(statusCode int, raw []byte) *Result {
	ok := statusCode >= 200 && statusCode < 300

	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if ok {
			if json.Valid(raw) {
				// Bare non-object payload (e.g. a top-level array)
				return &Result{Success: true, Data: raw, StatusCode: statusCode}
			}
			// 2xx but unparseable body
			return &Result{Success: false, Message: GenericNetworkError, StatusCode: statusCode}
		}
		return &Result{Success: false, Message: fmt.Sprintf("Request failed with status %d", statusCode), StatusCode: statusCode}
	}

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}

	if !ok {
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", statusCode)
		}
		// Error payloads survive: some rejections carry data the caller
		// needs, like the current balance on an insufficient-funds refusal.
		return &Result{Success: false, Data: envelope.Data, Message: message, StatusCode: statusCode}
	}

	// Application-level failure inside a 2xx envelope
	if envelope.Success != nil && !*envelope.Success {
		return &Result{Success: false, Data: envelope.Data, Message: message, StatusCode: statusCode}
	}

	data := envelope.Data
	if len(data) == 0 && envelope.Success == nil {
		// Bare payload, not the envelope shape
		data = raw
	}
	return &Result{Success: true, Data: data, Message: message, StatusCode: statusCode}
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}
