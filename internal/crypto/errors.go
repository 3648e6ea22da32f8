package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the randomness source fails.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidPrivateKeySize is returned when the private key size is invalid.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrPublicKeyMismatch is returned when a supplied public key does not
	// correspond to the supplied private key.
	ErrPublicKeyMismatch = errors.New("public key does not match private key")

	// ErrInvalidSharedPoint is returned when key agreement produces a
	// low-order point, i.e. the remote public key is malformed.
	ErrInvalidSharedPoint = errors.New("invalid shared point")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCiphertextTooShort is returned when the ciphertext cannot contain
	// a nonce and an authentication tag.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrDecryptionFailed is returned when AEAD authentication fails:
	// wrong key, corrupted data, or tampering.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrLengthMismatch is returned when the operands of a key wrap do not
	// have the required fixed width.
	ErrLengthMismatch = errors.New("length mismatch")
)
