package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	bdg, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { bdg.Close() })

	mem, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{
		"badger": bdg,
		"badger-inmem": mem,
		"memory": NewMemory(),
	}
}

func TestStore_PrivateKeyRoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			priv := []byte{1, 2, 3, 4, 5, 6, 7, 8}

			_, err := store.PrivateKey("0xabc")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.SetPrivateKey("0xabc", priv))

			got, err := store.PrivateKey("0xabc")
			require.NoError(t, err)
			assert.Equal(t, priv, got)

			// Other identities stay isolated.
			_, err = store.PrivateKey("0xdef")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ContentKeyLifecycle(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			key := make([]byte, 32)
			key[0] = 0xaa

			_, err := store.ContentKey("0xabc", "7")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.SetContentKey("0xabc", "7", key))

			got, err := store.ContentKey("0xabc", "7")
			require.NoError(t, err)
			assert.Equal(t, key, got)

			// Same listing id under another identity is a separate entry.
			_, err = store.ContentKey("0xdef", "7")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.DeleteContentKey("0xabc", "7"))
			_, err = store.ContentKey("0xabc", "7")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_OverwriteContentKey(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetContentKey("0xabc", "7", []byte{1}))
			require.NoError(t, store.SetContentKey("0xabc", "7", []byte{2}))

			got, err := store.ContentKey("0xabc", "7")
			require.NoError(t, err)
			assert.Equal(t, []byte{2}, got)
		})
	}
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetContentKey("0xabc", "7", []byte{9, 9, 9}))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ContentKey("0xabc", "7")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9}, got)
}

func TestStore_MutationIsCopied(t *testing.T) {
	store := NewMemory()
	key := []byte{1, 2, 3}
	require.NoError(t, store.SetContentKey("0xabc", "7", key))

	key[0] = 99
	got, err := store.ContentKey("0xabc", "7")
	require.NoError(t, err)
	assert.Equal(t, byte(1), got[0])
}
