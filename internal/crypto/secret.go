package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveSharedSecret performs X25519 key agreement and expands the raw
// shared point into a 32-byte wrap secret with HKDF-SHA-256.
//
// The derivation is symmetric: DeriveSharedSecret(aPriv, bPub) equals
// DeriveSharedSecret(bPriv, aPub) for keypairs (aPriv, aPub), (bPriv, bPub).
func DeriveSharedSecret(localPrivateKey, remotePublicKey []byte) ([]byte, error) {
	point, err := sharedPoint(localPrivateKey, remotePublicKey)
	if err != nil {
		return nil, err
	}

	reader := hkdf.New(sha256.New, point, nil, []byte(SecretContext))
	secret := make([]byte, SharedSecretSize)
	if _, err := io.ReadFull(reader, secret); err != nil {
		return nil, err
	}
	return secret, nil
}
