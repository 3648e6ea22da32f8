package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// randReader is the random source used for key and nonce generation.
// It can be overridden for testing.
var randReader io.Reader = rand.Reader

// KeyPair represents an X25519 keypair for key agreement.
type KeyPair struct {
	// PublicKey is the raw X25519 public key bytes.
	PublicKey []byte
	// PrivateKey is the raw X25519 private key bytes.
	PrivateKey []byte
}

// GenerateKeyPair creates a new X25519 keypair.
func GenerateKeyPair() (*KeyPair, error) {
	var pub, priv x25519.Key
	if _, err := io.ReadFull(randReader, priv[:]); err != nil {
		return nil, ErrKeyGeneration
	}
	x25519.KeyGen(&pub, &priv)

	return &KeyPair{
		PublicKey:  append([]byte(nil), pub[:]...),
		PrivateKey: append([]byte(nil), priv[:]...),
	}, nil
}

// KeyPairFromPrivateKey reconstructs a keypair from the private key.
// The public key is recomputed, so only the private key needs persisting.
func KeyPairFromPrivateKey(privateKey []byte) (*KeyPair, error) {
	publicKey, err := DerivePublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: append([]byte(nil), privateKey...),
	}, nil
}

// NewKeyPairFromBytes creates a keypair from raw bytes, verifying that the
// public key corresponds to the private key.
func NewKeyPairFromBytes(privateKey, publicKey []byte) (*KeyPair, error) {
	if len(publicKey) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}
	derived, err := DerivePublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(derived, publicKey) != 1 {
		return nil, ErrPublicKeyMismatch
	}
	return &KeyPair{
		PublicKey:  append([]byte(nil), publicKey...),
		PrivateKey: append([]byte(nil), privateKey...),
	}, nil
}

// DerivePublicKey computes the X25519 public key for a private key.
func DerivePublicKey(privateKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	var pub, priv x25519.Key
	copy(priv[:], privateKey)
	x25519.KeyGen(&pub, &priv)
	return append([]byte(nil), pub[:]...), nil
}

// sharedPoint performs the raw X25519 function between a local private key
// and a remote public key.
func sharedPoint(localPrivateKey, remotePublicKey []byte) ([]byte, error) {
	if len(localPrivateKey) != PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	if len(remotePublicKey) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}

	var shared, priv, pub x25519.Key
	copy(priv[:], localPrivateKey)
	copy(pub[:], remotePublicKey)
	if ok := x25519.Shared(&shared, &priv, &pub); !ok {
		return nil, ErrInvalidSharedPoint
	}
	return append([]byte(nil), shared[:]...), nil
}
