package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for a single ledger gateway deployment.
// It is bound to one caller identity; the gateway authenticates writes
// against that identity the way a chain node checks the tx signer.
type Client struct {
	baseURL    string
	identity   string
	chainID    uint64
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the ledger client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryConfig sets the retry policy for gateway calls.
func WithRetryConfig(rc *RetryConfig) Option {
	return func(c *Client) {
		c.retry = rc
	}
}

// WithChainID sets the chain id sent with every request, selecting the
// ledger deployment behind a multi-network gateway.
func WithChainID(id uint64) Option {
	return func(c *Client) {
		c.chainID = id
	}
}

// New creates a ledger client for the given gateway URL and caller identity.
func New(baseURL, identity string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	if identity == "" {
		return nil, fmt.Errorf("caller identity is required")
	}

	c := &Client{
		baseURL:  baseURL,
		identity: identity,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Identity returns the caller identity this client signs as.
func (c *Client) Identity() string {
	return c.identity
}

// do executes one gateway request with retries on transient failures.
// Rejections (4xx with a reason code) are never retried: the ledger has
// already given a final verdict.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path
	var lastErr error

	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Caller-Identity", c.identity)
		if c.chainID != 0 {
			req.Header.Set("X-Chain-ID", fmt.Sprintf("%d", c.chainID))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &NetworkError{Err: err, URL: url, Attempt: attempt}
			if attempt < c.retry.MaxRetries {
				if werr := c.retry.Wait(ctx, attempt); werr != nil {
					return werr
				}
				continue
			}
			return lastErr
		}

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			resp.Body.Close()
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return werr
			}
			continue
		}

		return c.handleResponse(resp, result)
	}
}

func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseRejection(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func parseRejection(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Reason != "" {
		return &RejectionError{
			StatusCode: resp.StatusCode,
			Reason:     Reason(errResp.Reason),
			Message:    errResp.Message,
		}
	}

	return &RejectionError{
		StatusCode: resp.StatusCode,
		Reason:     ReasonInvalidInput,
		Message:    string(body),
	}
}
