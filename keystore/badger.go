package keystore

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/keyscrow/client-go/internal/crypto"
)

// Key layout: pk/<identity> for private keys, ck/<identity>/<listingID>
// for content keys. Values are hex-encoded at rest.
const (
	privateKeyPrefix = "pk/"
	contentKeyPrefix = "ck/"
)

// Badger is a Store backed by a badger key-value database on disk.
type Badger struct {
	db *badger.DB
}

// Open opens (or creates) a badger-backed store at path.
func Open(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	return &Badger{db: db}, nil
}

// OpenInMemory opens a badger-backed store with no on-disk state. Suitable
// for tests; content keys stored here do not survive the process.
func OpenInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory key store: %w", err)
	}
	return &Badger{db: db}, nil
}

// SetPrivateKey persists an identity's private key.
func (b *Badger) SetPrivateKey(identity string, privateKey []byte) error {
	return b.set(privateKeyPrefix+identity, privateKey)
}

// PrivateKey returns an identity's private key, or ErrNotFound.
func (b *Badger) PrivateKey(identity string) ([]byte, error) {
	return b.get(privateKeyPrefix + identity)
}

// SetContentKey persists a listing's content key.
func (b *Badger) SetContentKey(identity, listingID string, key []byte) error {
	return b.set(contentKeyKey(identity, listingID), key)
}

// ContentKey returns a listing's content key, or ErrNotFound.
func (b *Badger) ContentKey(identity, listingID string) ([]byte, error) {
	return b.get(contentKeyKey(identity, listingID))
}

// DeleteContentKey discards a listing's content key.
func (b *Badger) DeleteContentKey(identity, listingID string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(contentKeyKey(identity, listingID)))
	})
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func (b *Badger) set(key string, value []byte) error {
	encoded := []byte(crypto.ToHex(value))
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
}

func (b *Badger) get(key string) ([]byte, error) {
	var encoded []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		encoded, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return crypto.FromHex(string(encoded))
}

func contentKeyKey(identity, listingID string) string {
	return contentKeyPrefix + identity + "/" + listingID
}
