package keyscrow

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/keyscrow/client-go/internal/contentstore"
)

// ContentStore is the content-addressed blob store holding encrypted
// listing content. Blobs are opaque ciphertext; the store never sees
// plaintext or keys.
type ContentStore interface {
	// Put uploads a blob and returns its locator.
	Put(ctx context.Context, data []byte) (string, error)
	// Get downloads the blob at locator, or ErrContentNotFound.
	Get(ctx context.Context, locator string) ([]byte, error)
	// Available reports whether the blob at locator can be fetched.
	Available(ctx context.Context, locator string) (bool, error)
}

// gatewayContentStore adapts the HTTP pinning gateway to ContentStore.
type gatewayContentStore struct {
	client *contentstore.Client
}

func newGatewayContentStore(baseURL, authToken string, httpClient *http.Client) (*gatewayContentStore, error) {
	opts := []contentstore.Option{}
	if authToken != "" {
		opts = append(opts, contentstore.WithAuthToken(authToken))
	}
	if httpClient != nil {
		opts = append(opts, contentstore.WithHTTPClient(httpClient))
	}
	client, err := contentstore.New(baseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("content store: %w", err)
	}
	return &gatewayContentStore{client: client}, nil
}

func (s *gatewayContentStore) Put(ctx context.Context, data []byte) (string, error) {
	return s.client.Put(ctx, data)
}

func (s *gatewayContentStore) Get(ctx context.Context, locator string) ([]byte, error) {
	data, err := s.client.Get(ctx, locator)
	if errors.Is(err, contentstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, locator)
	}
	return data, err
}

func (s *gatewayContentStore) Available(ctx context.Context, locator string) (bool, error) {
	return s.client.Available(ctx, locator)
}
