package keyscrow

import (
	"net/http"
	"time"

	"github.com/keyscrow/client-go/internal/ledger"
	"github.com/keyscrow/client-go/keystore"
)

// Network identifies one marketplace deployment: a ledger gateway, the
// escrow and payment-token contracts behind it, and the content store
// it pins to.
type Network struct {
	Name            string
	ChainID         uint64
	GatewayURL      string
	ContentStoreURL string
	EscrowAddress   string
	TokenAddress    string
	TokenDecimals   int
}

// NetworkMainnet is the production deployment on Arbitrum One, settling
// in USDT (6 decimals).
var NetworkMainnet = Network{
	Name:            "arbitrum",
	ChainID:         42161,
	GatewayURL:      "https://ledger.keyscrow.io",
	ContentStoreURL: "https://content.keyscrow.io",
	EscrowAddress:   "0xD3A17B869883EAec005620D84B38E68d3c6cF893",
	TokenAddress:    "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9",
	TokenDecimals:   6,
}

// NetworkTestnet is the Sepolia deployment with a mock payment token.
var NetworkTestnet = Network{
	Name:            "sepolia",
	ChainID:         11155111,
	GatewayURL:      "https://ledger.testnet.keyscrow.io",
	ContentStoreURL: "https://content.testnet.keyscrow.io",
	EscrowAddress:   "0x57b721a1904fb5187b93857f7f38fba80b568f34",
	TokenAddress:    "0x7169D38820dfd117C3FA1f22a697dBA58d90BA06",
	TokenDecimals:   6,
}

// NetworkByName resolves a preset by its name, defaulting to mainnet.
func NetworkByName(name string) Network {
	switch name {
	case NetworkTestnet.Name, "testnet":
		return NetworkTestnet
	default:
		return NetworkMainnet
	}
}

type clientConfig struct {
	network      Network
	httpClient   *http.Client
	retry        *ledger.RetryConfig
	ledger       Ledger
	store        ContentStore
	keyStore     keystore.Store
	keyStorePath string
	contentToken string
}

// Option configures the Client.
type Option func(*clientConfig)

// WithNetwork selects the marketplace deployment. Defaults to
// NetworkMainnet.
func WithNetwork(n Network) Option {
	return func(c *clientConfig) {
		c.network = n
	}
}

// WithGatewayURL overrides the network's ledger gateway URL.
func WithGatewayURL(url string) Option {
	return func(c *clientConfig) {
		c.network.GatewayURL = url
	}
}

// WithContentStoreURL overrides the network's content store URL.
func WithContentStoreURL(url string) Option {
	return func(c *clientConfig) {
		c.network.ContentStoreURL = url
	}
}

// WithContentAuthToken sets the bearer token for the pinning gateway.
func WithContentAuthToken(token string) Option {
	return func(c *clientConfig) {
		c.contentToken = token
	}
}

// WithHTTPClient sets a custom HTTP client for both gateways.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP timeout for gateway calls. Ignored when a
// custom HTTP client is provided.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = d
	}
}

// WithMaxRetries caps transient-failure retries for ledger calls.
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) {
		rc := ledger.DefaultRetryConfig()
		rc.MaxRetries = n
		c.retry = rc
	}
}

// WithLedger injects a Ledger implementation, replacing the HTTP
// gateway. The implementation must be bound to the client's identity.
func WithLedger(l Ledger) Option {
	return func(c *clientConfig) {
		c.ledger = l
	}
}

// WithContentStore injects a ContentStore implementation, replacing the
// HTTP pinning gateway.
func WithContentStore(s ContentStore) Option {
	return func(c *clientConfig) {
		c.store = s
	}
}

// WithKeyStore injects the local key store. The caller keeps ownership
// and closes it; Close on the client will not touch it.
func WithKeyStore(s keystore.Store) Option {
	return func(c *clientConfig) {
		c.keyStore = s
		c.keyStorePath = ""
	}
}

// WithKeyStorePath opens a badger-backed key store at path. The client
// owns it and closes it on Close. This is the right choice for sellers:
// content keys must survive restarts or sales can never be fulfilled.
func WithKeyStorePath(path string) Option {
	return func(c *clientConfig) {
		c.keyStorePath = path
		c.keyStore = nil
	}
}

// waitConfig controls polling in wait helpers.
type waitConfig struct {
	timeout      time.Duration
	pollInterval time.Duration
	maxInterval  time.Duration
	multiplier   float64
}

func defaultWaitConfig() waitConfig {
	return waitConfig{
		timeout:      5 * time.Minute,
		pollInterval: 2 * time.Second,
		maxInterval:  15 * time.Second,
		multiplier:   1.5,
	}
}

// WaitOption configures wait helpers such as WaitForAcceptance.
type WaitOption func(*waitConfig)

// WithWaitTimeout bounds the total time a wait helper polls before
// returning ErrWaitTimeout. Zero means no bound beyond the context.
func WithWaitTimeout(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		w.timeout = d
	}
}

// WithPollInterval sets the initial interval between ledger polls.
func WithPollInterval(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		w.pollInterval = d
	}
}

// WithMaxPollInterval caps the interval after backoff growth.
func WithMaxPollInterval(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		w.maxInterval = d
	}
}
