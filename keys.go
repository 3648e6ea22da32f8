package keyscrow

import (
	"errors"
	"fmt"

	"github.com/keyscrow/client-go/internal/crypto"
	"github.com/keyscrow/client-go/keystore"
)

// KeyManager creates and persists X25519 key pairs for identities. It is
// safe for concurrent use when its Store is.
type KeyManager struct {
	store keystore.Store
}

// NewKeyManager returns a KeyManager over the given store.
func NewKeyManager(store keystore.Store) *KeyManager {
	return &KeyManager{store: store}
}

// GenerateKeyPair creates a fresh key pair without persisting it.
func (m *KeyManager) GenerateKeyPair() (*KeyPair, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return &KeyPair{PublicKey: kp.PublicKey, PrivateKey: kp.PrivateKey}, nil
}

// EnsureKeyPair returns the identity's persisted key pair, generating
// and storing one on first use. Repeated calls return the same pair.
func (m *KeyManager) EnsureKeyPair(identity string) (*KeyPair, error) {
	priv, err := m.store.PrivateKey(identity)
	switch {
	case err == nil:
		kp, err := crypto.KeyPairFromPrivateKey(priv)
		if err != nil {
			return nil, wrapCryptoError(err)
		}
		return &KeyPair{PublicKey: kp.PublicKey, PrivateKey: kp.PrivateKey}, nil
	case errors.Is(err, keystore.ErrNotFound):
		// First use for this identity.
	default:
		return nil, fmt.Errorf("load private key: %w", err)
	}

	kp, err := m.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := m.store.SetPrivateKey(identity, kp.PrivateKey); err != nil {
		return nil, fmt.Errorf("persist private key: %w", err)
	}
	return kp, nil
}

// DeriveSharedSecret computes the 32-byte secret both parties derive
// from their own private key and the other party's public key. The
// secret is symmetric: seller and buyer arrive at the same value.
func (m *KeyManager) DeriveSharedSecret(localPrivateKey, remotePublicKey []byte) ([]byte, error) {
	secret, err := crypto.DeriveSharedSecret(localPrivateKey, remotePublicKey)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return secret, nil
}
