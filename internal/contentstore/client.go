// Package contentstore is the HTTP adapter for the content-addressed blob
// store. The store's contract is minimal: put(bytes) returns a locator,
// get(locator) returns the bytes, and the same bytes always map to the same
// locator. Ciphertext goes in, ciphertext comes out; this package never
// sees plaintext or keys.
package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNotFound is returned when no blob exists for a locator.
	ErrNotFound = errors.New("content not found")
	// ErrMissingLocator is returned when the gateway response lacks a locator.
	ErrMissingLocator = errors.New("gateway returned no locator")
)

// StatusError is a non-404 HTTP failure from the gateway.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("content store error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("content store error %d", e.StatusCode)
}

// Client talks to a pinning gateway.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// Option configures the content store client.
type Option func(*Client)

// WithAuthToken sets the bearer token for upload authorization.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a content store client for the given gateway URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("content store URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute, // uploads can be large
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Put uploads a blob and returns its content-derived locator.
func (c *Client) Put(ctx context.Context, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "blob")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/blobs", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(resp)
	}

	var result struct {
		Locator string `json:"locator"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.Locator == "" {
		return "", ErrMissingLocator
	}
	return result.Locator, nil
}

// Get downloads the blob for a locator.
func (c *Client) Get(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.blobURL(locator), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, statusError(resp)
	}

	return io.ReadAll(resp.Body)
}

// Available reports whether the blob for a locator is retrievable.
func (c *Client) Available(ctx context.Context, locator string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, "HEAD", c.blobURL(locator), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode < 400, nil
}

func (c *Client) blobURL(locator string) string {
	return c.baseURL + "/v1/blobs/" + url.PathEscape(locator)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{StatusCode: resp.StatusCode, Message: string(body)}
}
