package crypto

const (
	// PublicKeySize is the size of an X25519 public key in bytes.
	PublicKeySize = 32
	// PrivateKeySize is the size of an X25519 private key in bytes.
	PrivateKeySize = 32
	// SharedSecretSize is the size of the derived wrap secret in bytes.
	SharedSecretSize = 32

	// ContentKeySize is the size of an AES-256 content key in bytes.
	ContentKeySize = 32
	// WrappedKeySize is the width of the on-ledger wrapped-key field.
	// It equals ContentKeySize because wrapping is XOR with the shared secret.
	WrappedKeySize = 32

	// DigestSize is the size of a SHA-256 content digest in bytes.
	DigestSize = 32

	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16
)

// SecretContext is the HKDF domain-separation context for wrap secrets.
const SecretContext = "keyscrow:wrap:v1"

// AlgsCiphersuite is the canonical string representation of the algorithm suite.
var AlgsCiphersuite = "X25519:HKDF-SHA-256:AES-256-GCM:SHA-256"
