package keyscrow

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envSettings are the KEYSCROW_* environment variables recognized by
// OptionsFromEnv.
type envSettings struct {
	Network         string        `envconfig:"NETWORK" default:"arbitrum"`
	GatewayURL      string        `envconfig:"GATEWAY_URL"`
	ContentStoreURL string        `envconfig:"CONTENT_STORE_URL"`
	ContentToken    string        `envconfig:"CONTENT_TOKEN"`
	KeyStorePath    string        `envconfig:"KEYSTORE_PATH"`
	Timeout         time.Duration `envconfig:"TIMEOUT"`
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"-1"`
}

// OptionsFromEnv builds client options from KEYSCROW_* environment
// variables: NETWORK, GATEWAY_URL, CONTENT_STORE_URL, CONTENT_TOKEN,
// KEYSTORE_PATH, TIMEOUT and MAX_RETRIES. Unset variables leave the
// defaults in place.
func OptionsFromEnv() ([]Option, error) {
	var s envSettings
	if err := envconfig.Process("keyscrow", &s); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	opts := []Option{WithNetwork(NetworkByName(s.Network))}
	if s.GatewayURL != "" {
		opts = append(opts, WithGatewayURL(s.GatewayURL))
	}
	if s.ContentStoreURL != "" {
		opts = append(opts, WithContentStoreURL(s.ContentStoreURL))
	}
	if s.ContentToken != "" {
		opts = append(opts, WithContentAuthToken(s.ContentToken))
	}
	if s.KeyStorePath != "" {
		opts = append(opts, WithKeyStorePath(s.KeyStorePath))
	}
	if s.Timeout > 0 {
		opts = append(opts, WithTimeout(s.Timeout))
	}
	if s.MaxRetries >= 0 {
		opts = append(opts, WithMaxRetries(s.MaxRetries))
	}
	return opts, nil
}
