// Package keystore persists local key material for keyscrow identities:
// the identity's X25519 private key and one content key per listing.
//
// Content keys are the single piece of state whose loss is unrecoverable.
// A seller must hold a listing's content key from creation until the sale
// is accepted; if it is lost the listing can never be fulfilled. Use the
// badger-backed store for anything longer-lived than a test.
//
// There is deliberately no way to re-derive a content key from a master
// secret; the key exists only here and, transiently, on the buyer's side
// after unwrap.
package keystore

import "errors"

// ErrNotFound is returned when no entry exists for the requested key.
var ErrNotFound = errors.New("key not found")

// Store is the keyed-lookup contract the coordinator depends on. All
// values are raw key bytes; implementations own their encoding at rest.
// Implementations must be safe for concurrent use.
type Store interface {
	// SetPrivateKey persists an identity's X25519 private key.
	SetPrivateKey(identity string, privateKey []byte) error
	// PrivateKey returns an identity's X25519 private key, or ErrNotFound.
	PrivateKey(identity string) ([]byte, error)

	// SetContentKey persists the symmetric content key for one of the
	// identity's listings.
	SetContentKey(identity, listingID string, key []byte) error
	// ContentKey returns the content key for a listing, or ErrNotFound.
	ContentKey(identity, listingID string) ([]byte, error)
	// DeleteContentKey discards a content key, typically after the
	// listing is sold.
	DeleteContentKey(identity, listingID string) error

	// Close releases any underlying resources.
	Close() error
}
