package ledger

// PurchaseStatus is the gateway's wire encoding of a purchase state.
type PurchaseStatus string

const (
	// StatusEscrowed means funds are held and no wrapped key is published.
	StatusEscrowed PurchaseStatus = "escrowed"
	// StatusAccepted means the seller published the wrapped key and funds
	// were released. Terminal.
	StatusAccepted PurchaseStatus = "accepted"
	// StatusCancelled means the buyer withdrew and funds were refunded.
	// Terminal.
	StatusCancelled PurchaseStatus = "cancelled"
)

// ZeroWrappedKeyHex is the zero sentinel for an unset wrapped key, as the
// gateway encodes its 32-byte wrapped-key field.
const ZeroWrappedKeyHex = "0x0000000000000000000000000000000000000000000000000000000000000000"

// ListingRecord is a listing as returned by the gateway.
type ListingRecord struct {
	ID              string `json:"id"`
	Seller          string `json:"seller"`
	SellerPublicKey string `json:"sellerPublicKey"` // hex
	ContentDigest   string `json:"contentDigest"`   // hex, digest of the plaintext
	ContentLocator  string `json:"contentLocator"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	FileType        string `json:"fileType"`
	FileSizeBytes   int64  `json:"fileSizeBytes"`
	Price           uint64 `json:"price"` // smallest token units
	Active          bool   `json:"active"`
	Sold            bool   `json:"sold"`
	CreatedAt       int64  `json:"createdAt"` // unix seconds
}

// PurchaseRecord is a purchase as returned by the gateway. WrappedKey is
// the zero sentinel until the purchase is accepted.
type PurchaseRecord struct {
	ID             string         `json:"id"`
	ListingID      string         `json:"listingId"`
	Buyer          string         `json:"buyer"`
	BuyerPublicKey string         `json:"buyerPublicKey"` // hex
	WrappedKey     string         `json:"wrappedKey"`     // hex, 32 bytes
	Amount         uint64         `json:"amount"`
	CreatedAt      int64          `json:"createdAt"`
	AcceptedAt     int64          `json:"acceptedAt"`
	Status         PurchaseStatus `json:"status"`
}

// CreateListingParams are the inputs to the createListing gateway call.
type CreateListingParams struct {
	SellerPublicKey string `json:"sellerPublicKey"`
	ContentDigest   string `json:"contentDigest"`
	ContentLocator  string `json:"contentLocator"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	FileType        string `json:"fileType"`
	FileSizeBytes   int64  `json:"fileSizeBytes"`
	Price           uint64 `json:"price"`
}

// UpdateListingParams are the mutable listing fields a seller may change
// while the listing is unsold.
type UpdateListingParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       uint64 `json:"price"`
}

// Stats are the gateway's global counters.
type Stats struct {
	TotalListings  int `json:"totalListings"`
	TotalPurchases int `json:"totalPurchases"`
}
