package keyscrow

import (
	"fmt"
	"sync"

	"github.com/keyscrow/client-go/keystore"
)

// Client coordinates one identity's marketplace activity: publishing
// encrypted listings as a seller and escrowing, fulfilling or cancelling
// purchases as a buyer. It holds no authoritative state of its own; the
// ledger is the source of truth and every write is followed by a
// re-read before results are returned.
type Client struct {
	identity string
	network  Network
	ledger   Ledger
	store    ContentStore
	keys     *KeyManager
	keyStore keystore.Store

	// ownsKeyStore is set when the client opened the key store itself
	// and must close it.
	ownsKeyStore bool

	mu     sync.RWMutex
	closed bool
}

// New creates a client acting as the given wallet identity.
//
// Without options the client talks to the mainnet gateways and keeps
// keys in memory only. Sellers should pass WithKeyStorePath (or
// WithKeyStore) so content keys survive restarts.
func New(identity string, opts ...Option) (*Client, error) {
	if identity == "" {
		return nil, ErrMissingIdentity
	}

	cfg := clientConfig{network: NetworkMainnet}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{
		identity: identity,
		network:  cfg.network,
		ledger:   cfg.ledger,
		store:    cfg.store,
		keyStore: cfg.keyStore,
	}

	if c.keyStore == nil {
		if cfg.keyStorePath != "" {
			ks, err := keystore.Open(cfg.keyStorePath)
			if err != nil {
				return nil, err
			}
			c.keyStore = ks
			c.ownsKeyStore = true
		} else {
			c.keyStore = keystore.NewMemory()
		}
	}
	c.keys = NewKeyManager(c.keyStore)

	if c.ledger == nil {
		gw, err := newGatewayLedger(cfg.network.GatewayURL, identity, cfg.network.ChainID, cfg.httpClient, cfg.retry)
		if err != nil {
			c.closeKeyStore()
			return nil, err
		}
		c.ledger = gw
	}

	if c.store == nil {
		cs, err := newGatewayContentStore(cfg.network.ContentStoreURL, cfg.contentToken, cfg.httpClient)
		if err != nil {
			c.closeKeyStore()
			return nil, err
		}
		c.store = cs
	}

	return c, nil
}

// Identity returns the wallet identity this client acts as.
func (c *Client) Identity() string {
	return c.identity
}

// Network returns the deployment the client is connected to.
func (c *Client) Network() Network {
	return c.network
}

// Keys returns the client's key manager.
func (c *Client) Keys() *KeyManager {
	return c.keys
}

// Close releases client resources. Further calls on the client return
// ErrClientClosed. A key store supplied via WithKeyStore is left open.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.closeKeyStore()
}

func (c *Client) closeKeyStore() error {
	if !c.ownsKeyStore {
		return nil
	}
	if err := c.keyStore.Close(); err != nil {
		return fmt.Errorf("close key store: %w", err)
	}
	return nil
}

func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}
