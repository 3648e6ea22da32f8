package keyscrow

import (
	"fmt"
	"time"

	"github.com/keyscrow/client-go/internal/crypto"
)

// PurchaseStatus is the lifecycle state of a purchase.
type PurchaseStatus string

const (
	// PurchaseEscrowed means funds are held and the seller has not yet
	// published the wrapped key.
	PurchaseEscrowed PurchaseStatus = "escrowed"
	// PurchaseAccepted means the wrapped key is published and funds were
	// released to the seller. Terminal.
	PurchaseAccepted PurchaseStatus = "accepted"
	// PurchaseCancelled means the buyer withdrew before acceptance and
	// funds were refunded. Terminal.
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// WrappedKeySize is the fixed width of an on-ledger wrapped key.
const WrappedKeySize = crypto.WrappedKeySize

// WrappedKey is the fixed-width value a seller publishes when accepting a
// purchase: the content key XORed with the buyer/seller shared secret.
// The zero value is the ledger's "not yet published" sentinel.
type WrappedKey [WrappedKeySize]byte

// IsZero reports whether the wrapped key is the unset sentinel.
func (w WrappedKey) IsZero() bool {
	return w == WrappedKey{}
}

// Hex returns the ledger encoding of the wrapped key.
func (w WrappedKey) Hex() string {
	return "0x" + crypto.ToHex(w[:])
}

// WrappedKeyFromBytes builds a WrappedKey from raw bytes.
func WrappedKeyFromBytes(b []byte) (WrappedKey, error) {
	var w WrappedKey
	if len(b) != WrappedKeySize {
		return w, fmt.Errorf("%w: wrapped key must be %d bytes, got %d", ErrLengthMismatch, WrappedKeySize, len(b))
	}
	copy(w[:], b)
	return w, nil
}

// WrappedKeyFromHex parses the ledger encoding of a wrapped key. An
// optional 0x prefix is accepted.
func WrappedKeyFromHex(s string) (WrappedKey, error) {
	b, err := crypto.FromHex(s)
	if err != nil {
		return WrappedKey{}, fmt.Errorf("decode wrapped key: %w", err)
	}
	return WrappedKeyFromBytes(b)
}

// KeyPair is an identity's X25519 key pair. The public key is published
// on the ledger with listings and purchases; the private key never
// leaves the local key store.
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// Listing is published content offered for sale. All fields reflect
// ledger state as of the last read; Category is derived locally from
// FileType.
type Listing struct {
	ID              string
	Seller          string
	SellerPublicKey []byte
	ContentDigest   []byte // SHA-256 of the plaintext
	ContentLocator  string
	Title           string
	Description     string
	FileType        string
	FileSize        int64
	Price           uint64 // smallest token units
	Category        Category
	Active          bool
	Sold            bool
	CreatedAt       time.Time
}

// Purchasable reports whether the listing can currently be purchased.
func (l *Listing) Purchasable() bool {
	return l.Active && !l.Sold
}

// Purchase is a buyer's escrowed claim on a listing. WrappedKey is the
// zero sentinel until the seller accepts.
type Purchase struct {
	ID             string
	ListingID      string
	Buyer          string
	BuyerPublicKey []byte
	WrappedKey     WrappedKey
	Amount         uint64
	Status         PurchaseStatus
	CreatedAt      time.Time
	AcceptedAt     time.Time // zero until accepted
}

// Pending reports whether the purchase still awaits the seller's decision.
func (p *Purchase) Pending() bool {
	return p.Status == PurchaseEscrowed
}

// CreateListingParams are the ledger inputs for publishing a listing.
// The coordinator fills the key, digest and locator fields.
type CreateListingParams struct {
	SellerPublicKey []byte
	ContentDigest   []byte
	ContentLocator  string
	Title           string
	Description     string
	FileType        string
	FileSize        int64
	Price           uint64
}

// ListingUpdate holds the mutable listing fields a seller may change
// while the listing is unsold. Content fields are immutable; publish a
// new listing instead.
type ListingUpdate struct {
	Title       string
	Description string
	Price       uint64
}

// ListingMetadata describes the content being listed for sale.
type ListingMetadata struct {
	Title       string
	Description string
	FileType    string
	Price       uint64 // smallest token units
}

// Stats are the ledger's global counters.
type Stats struct {
	TotalListings  int
	TotalPurchases int
}
