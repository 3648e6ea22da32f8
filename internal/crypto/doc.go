// Package crypto provides the cryptographic primitives for the keyscrow
// key-exchange protocol: key agreement, content encryption, and key wrapping.
//
// # Algorithm Suite
//
//   - X25519 (RFC 7748): Diffie-Hellman key agreement between seller and
//     buyer. Public keys, private keys, and raw shared points are all a
//     fixed 32 bytes, which is what lets the wrapped key fit a single
//     fixed-width on-ledger field.
//
//   - HKDF-SHA-256 (RFC 5869): derives the 32-byte wrap secret from the raw
//     X25519 shared point with a versioned domain-separation context.
//
//   - AES-256-GCM: authenticated encryption for content. Ciphertexts are
//     self-contained: nonce (12 bytes) || ciphertext || tag (16 bytes).
//
//   - SHA-256: content digests over the plaintext, verified after decryption.
//
// # Key Wrapping
//
// A content key is wrapped by XOR with the derived shared secret:
//
//	wrapped = DeriveSharedSecret(sellerPriv, buyerPub) XOR contentKey
//
// By Diffie-Hellman symmetry the buyer derives the identical secret from
// (buyerPriv, sellerPub) and recovers the content key with the same XOR.
// No nonce or tag is needed because a given (seller, buyer) secret wraps
// exactly one content key; callers must never reuse it for a second wrap,
// since XOR of two wraps under the same secret leaks their XOR.
//
// # Nonces
//
// AES-GCM nonces MUST be unique per encryption under the same key. Encrypt
// draws a fresh random nonce on every call; callers must not attempt to
// patch existing ciphertext in place.
//
// Private keys and content keys never appear in error messages.
package crypto
