package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"io"
)

// Digest computes the SHA-256 digest of a plaintext byte sequence.
// Digests always refer to the plaintext; verification must decrypt first.
func Digest(plaintext []byte) []byte {
	sum := sha256.Sum256(plaintext)
	return sum[:]
}

// GenerateContentKey creates a cryptographically random AES-256 content key.
func GenerateContentKey() ([]byte, error) {
	key := make([]byte, ContentKeySize)
	if _, err := io.ReadFull(randReader, key); err != nil {
		return nil, ErrKeyGeneration
	}
	return key, nil
}

// Encrypt encrypts plaintext with AES-256-GCM under a fresh random nonce.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes).
func Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), ContentKeySize)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, ErrKeyGeneration
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt splits the nonce from the front of the ciphertext, authenticates
// and decrypts. The input format is nonce || ciphertext || tag as produced
// by Encrypt. Authentication failure yields ErrDecryptionFailed, never
// garbage plaintext.
func Decrypt(key, encrypted []byte) ([]byte, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), ContentKeySize)
	}
	if len(encrypted) < NonceSize+TagSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := encrypted[:NonceSize]
	ciphertext := encrypted[NonceSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
