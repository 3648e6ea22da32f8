package crypto

// WrapKey wraps a content key for a specific remote party:
//
//	wrapped = DeriveSharedSecret(localPrivateKey, remotePublicKey) XOR contentKey
//
// The result is a fixed 32-byte value safe to publish on the ledger. The
// shared secret for a given (local, remote) pair must wrap at most one
// content key; the coordinator binds each wrap to a single purchase.
func WrapKey(contentKey, localPrivateKey, remotePublicKey []byte) ([]byte, error) {
	if len(contentKey) != ContentKeySize {
		return nil, ErrLengthMismatch
	}
	secret, err := DeriveSharedSecret(localPrivateKey, remotePublicKey)
	if err != nil {
		return nil, err
	}
	return xorBytes(secret, contentKey)
}

// UnwrapKey recovers a content key wrapped for the local party:
//
//	contentKey = DeriveSharedSecret(localPrivateKey, remotePublicKey) XOR wrapped
//
// By Diffie-Hellman symmetry this is the inverse of WrapKey performed with
// the opposite keypair.
func UnwrapKey(wrappedKey, localPrivateKey, remotePublicKey []byte) ([]byte, error) {
	if len(wrappedKey) != WrappedKeySize {
		return nil, ErrLengthMismatch
	}
	secret, err := DeriveSharedSecret(localPrivateKey, remotePublicKey)
	if err != nil {
		return nil, err
	}
	return xorBytes(secret, wrappedKey)
}

// xorBytes XORs two equal-length byte slices into a new slice.
func xorBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, ErrLengthMismatch
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}
