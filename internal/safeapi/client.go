// Package safeapi is a client for the Safe Transaction Service REST API.
package safeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ChainAdapter gives the client access to the chain the Safe lives on.
type ChainAdapter interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// Signer is the identity used to authorize delegate changes.
type Signer interface {
	Address() common.Address
	// SignMessage returns an EIP-191 personal_sign signature over msg.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

type Config struct {
	TxServiceURL string
	ChainAdapter ChainAdapter
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithClock replaces the time source used for delegate signatures.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL      string
	chainAdapter ChainAdapter
	httpClient   *http.Client
	now          func() time.Time
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.TxServiceURL == "" {
		return nil, errors.New("tx service url is required")
	}
	if _, err := url.ParseRequestURI(cfg.TxServiceURL); err != nil {
		return nil, fmt.Errorf("invalid tx service url, err: %w", err)
	}
	if cfg.ChainAdapter == nil {
		return nil, errors.New("chain adapter is required")
	}
	c := &Client{
		baseURL:      txServiceBaseURL(cfg.TxServiceURL),
		chainAdapter: cfg.ChainAdapter,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func txServiceBaseURL(txServiceURL string) string {
	base := strings.TrimRight(txServiceURL, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

// HTTPError is returned when the transaction service answers with a non-2xx
// status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) RemoteStatusCode() int {
	return e.StatusCode
}

// error fields reported by the service, in the order they are looked up
var errorFields = []string{"data", "detail", "message", "nonFieldErrors", "delegate", "safe", "delegator"}

func newHTTPError(resp *http.Response, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: resp.StatusCode}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, name := range errorFields {
			if raw, ok := fields[name]; ok {
				httpErr.Message = errorText(raw)
				break
			}
		}
	}
	if httpErr.Message == "" {
		httpErr.Message = http.StatusText(resp.StatusCode)
	}
	return httpErr
}

func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ",")
	}
	return string(raw)
}

func (c *Client) sendRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("fail to marshal request body, err: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("fail to create request, err: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fail to send request to %s, err: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fail to read response body, err: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp, respBody)
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("fail to decode response from %s, err: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.sendRequest(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.sendRequest(ctx, http.MethodPost, path, nil, body, out)
}

func pathf(format string, segments ...string) string {
	escaped := make([]any, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(format, escaped...)
}
