package crypto

import (
	"bytes"
	"errors"
	"testing"
)

// failingReader always errors, simulating an unavailable randomness source.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	if len(kp.PublicKey) != PublicKeySize {
		t.Errorf("public key length = %d, want %d", len(kp.PublicKey), PublicKeySize)
	}
	if len(kp.PrivateKey) != PrivateKeySize {
		t.Errorf("private key length = %d, want %d", len(kp.PrivateKey), PrivateKeySize)
	}

	other, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(kp.PrivateKey, other.PrivateKey) {
		t.Error("two generated private keys are identical")
	}
}

func TestGenerateKeyPair_RandFailure(t *testing.T) {
	restore := SetRandReaderForTesting(failingReader{})
	defer restore()

	if _, err := GenerateKeyPair(); !errors.Is(err, ErrKeyGeneration) {
		t.Errorf("expected ErrKeyGeneration, got %v", err)
	}
}

func TestKeyPairFromPrivateKey(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := KeyPairFromPrivateKey(kp.PrivateKey)
	if err != nil {
		t.Fatalf("KeyPairFromPrivateKey() error = %v", err)
	}
	if !bytes.Equal(restored.PublicKey, kp.PublicKey) {
		t.Error("restored public key differs from original")
	}
}

func TestKeyPairFromPrivateKey_InvalidSize(t *testing.T) {
	_, err := KeyPairFromPrivateKey(make([]byte, 16))
	if !errors.Is(err, ErrInvalidPrivateKeySize) {
		t.Errorf("expected ErrInvalidPrivateKeySize, got %v", err)
	}
}

func TestNewKeyPairFromBytes(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("matching pair", func(t *testing.T) {
		got, err := NewKeyPairFromBytes(kp.PrivateKey, kp.PublicKey)
		if err != nil {
			t.Fatalf("NewKeyPairFromBytes() error = %v", err)
		}
		if !bytes.Equal(got.PublicKey, kp.PublicKey) {
			t.Error("public key not preserved")
		}
	})

	t.Run("mismatched public key", func(t *testing.T) {
		other, err := GenerateKeyPair()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := NewKeyPairFromBytes(kp.PrivateKey, other.PublicKey); !errors.Is(err, ErrPublicKeyMismatch) {
			t.Errorf("expected ErrPublicKeyMismatch, got %v", err)
		}
	})

	t.Run("invalid public key size", func(t *testing.T) {
		if _, err := NewKeyPairFromBytes(kp.PrivateKey, make([]byte, 33)); !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
		}
	})
}
