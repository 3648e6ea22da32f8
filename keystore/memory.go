package keystore

import "sync"

// Memory is an in-process Store. Keys do not survive the process; use it
// for tests or ephemeral buyer-side identities only.
type Memory struct {
	mu          sync.RWMutex
	privateKeys map[string][]byte
	contentKeys map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		privateKeys: make(map[string][]byte),
		contentKeys: make(map[string][]byte),
	}
}

// SetPrivateKey stores an identity's private key.
func (m *Memory) SetPrivateKey(identity string, privateKey []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.privateKeys[identity] = append([]byte(nil), privateKey...)
	return nil
}

// PrivateKey returns an identity's private key, or ErrNotFound.
func (m *Memory) PrivateKey(identity string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key, ok := m.privateKeys[identity]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), key...), nil
}

// SetContentKey stores a listing's content key.
func (m *Memory) SetContentKey(identity, listingID string, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contentKeys[contentKeyKey(identity, listingID)] = append([]byte(nil), key...)
	return nil
}

// ContentKey returns a listing's content key, or ErrNotFound.
func (m *Memory) ContentKey(identity, listingID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key, ok := m.contentKeys[contentKeyKey(identity, listingID)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), key...), nil
}

// DeleteContentKey discards a listing's content key.
func (m *Memory) DeleteContentKey(identity, listingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contentKeys, contentKeyKey(identity, listingID))
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
