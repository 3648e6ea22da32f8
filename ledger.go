package keyscrow

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/keyscrow/client-go/internal/crypto"
	"github.com/keyscrow/client-go/internal/ledger"
)

// Ledger is the append-only escrow ledger the client coordinates
// against. Implementations are bound to one caller identity; writes are
// attributed to it. The ledger is the sole source of truth for listing
// and purchase state, and enforces all transition rules itself.
type Ledger interface {
	// CreateListing publishes a listing and returns its id.
	CreateListing(ctx context.Context, params CreateListingParams) (string, error)
	// UpdateListing changes mutable fields of an unsold listing. Seller-only.
	UpdateListing(ctx context.Context, listingID string, update ListingUpdate) error
	// DeactivateListing hides a listing from the active set. Seller-only.
	DeactivateListing(ctx context.Context, listingID string) error
	// ReactivateListing restores a deactivated listing. Seller-only.
	ReactivateListing(ctx context.Context, listingID string) error

	// EnsureAllowance authorizes the escrow to draw up to amount from
	// the caller's balance.
	EnsureAllowance(ctx context.Context, amount uint64) error
	// PurchaseListing escrows the listing price under the buyer's public
	// key and returns the new purchase id.
	PurchaseListing(ctx context.Context, listingID string, buyerPublicKey []byte) (string, error)
	// AcceptPurchase publishes the wrapped key, marks the listing sold
	// and releases funds to the seller. Atomic on the ledger side.
	AcceptPurchase(ctx context.Context, purchaseID string, wrapped WrappedKey) error
	// CancelPurchase refunds an escrowed purchase to the buyer.
	CancelPurchase(ctx context.Context, purchaseID string) error

	// Listing fetches current listing state.
	Listing(ctx context.Context, listingID string) (*Listing, error)
	// ActiveListings pages through active, unsold listings.
	ActiveListings(ctx context.Context, offset, limit int) ([]*Listing, error)
	// ListingsBySeller fetches all listings owned by an identity.
	ListingsBySeller(ctx context.Context, seller string) ([]*Listing, error)
	// Purchase fetches current purchase state.
	Purchase(ctx context.Context, purchaseID string) (*Purchase, error)
	// PurchasesByBuyer fetches every purchase made by an identity.
	PurchasesByBuyer(ctx context.Context, buyer string) ([]*Purchase, error)
	// CompletedPurchasesByBuyer fetches an identity's accepted purchases.
	CompletedPurchasesByBuyer(ctx context.Context, buyer string) ([]*Purchase, error)
	// PendingPurchasesForSeller fetches escrowed purchases across the
	// seller's listings.
	PendingPurchasesForSeller(ctx context.Context, seller string) ([]*Purchase, error)
	// HasBuyerPurchased reports whether buyer holds an accepted purchase
	// on the listing, and its id if so.
	HasBuyerPurchased(ctx context.Context, listingID, buyer string) (bool, string, error)
	// Stats fetches global ledger counters.
	Stats(ctx context.Context) (*Stats, error)
}

// gatewayLedger adapts the HTTP ledger gateway to the Ledger interface,
// translating wire records and adapter errors into the public types.
type gatewayLedger struct {
	client *ledger.Client
}

func newGatewayLedger(baseURL, identity string, chainID uint64, httpClient *http.Client, retry *ledger.RetryConfig) (*gatewayLedger, error) {
	opts := []ledger.Option{ledger.WithChainID(chainID)}
	if httpClient != nil {
		opts = append(opts, ledger.WithHTTPClient(httpClient))
	}
	if retry != nil {
		opts = append(opts, ledger.WithRetryConfig(retry))
	}
	client, err := ledger.New(baseURL, identity, opts...)
	if err != nil {
		return nil, fmt.Errorf("ledger gateway: %w", err)
	}
	return &gatewayLedger{client: client}, nil
}

func (g *gatewayLedger) CreateListing(ctx context.Context, params CreateListingParams) (string, error) {
	id, err := g.client.CreateListing(ctx, &ledger.CreateListingParams{
		SellerPublicKey: "0x" + crypto.ToHex(params.SellerPublicKey),
		ContentDigest:   "0x" + crypto.ToHex(params.ContentDigest),
		ContentLocator:  params.ContentLocator,
		Title:           params.Title,
		Description:     params.Description,
		FileType:        params.FileType,
		FileSizeBytes:   params.FileSize,
		Price:           params.Price,
	})
	return id, wrapLedgerError(err)
}

func (g *gatewayLedger) UpdateListing(ctx context.Context, listingID string, update ListingUpdate) error {
	return wrapLedgerError(g.client.UpdateListing(ctx, listingID, &ledger.UpdateListingParams{
		Title:       update.Title,
		Description: update.Description,
		Price:       update.Price,
	}))
}

func (g *gatewayLedger) DeactivateListing(ctx context.Context, listingID string) error {
	return wrapLedgerError(g.client.DeactivateListing(ctx, listingID))
}

func (g *gatewayLedger) ReactivateListing(ctx context.Context, listingID string) error {
	return wrapLedgerError(g.client.ReactivateListing(ctx, listingID))
}

func (g *gatewayLedger) EnsureAllowance(ctx context.Context, amount uint64) error {
	return wrapLedgerError(g.client.EnsureAllowance(ctx, amount))
}

func (g *gatewayLedger) PurchaseListing(ctx context.Context, listingID string, buyerPublicKey []byte) (string, error) {
	id, err := g.client.PurchaseListing(ctx, listingID, "0x"+crypto.ToHex(buyerPublicKey))
	return id, wrapLedgerError(err)
}

func (g *gatewayLedger) AcceptPurchase(ctx context.Context, purchaseID string, wrapped WrappedKey) error {
	return wrapLedgerError(g.client.AcceptPurchase(ctx, purchaseID, wrapped.Hex()))
}

func (g *gatewayLedger) CancelPurchase(ctx context.Context, purchaseID string) error {
	return wrapLedgerError(g.client.CancelPurchase(ctx, purchaseID))
}

func (g *gatewayLedger) Listing(ctx context.Context, listingID string) (*Listing, error) {
	rec, err := g.client.GetListing(ctx, listingID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return listingFromRecord(rec)
}

func (g *gatewayLedger) ActiveListings(ctx context.Context, offset, limit int) ([]*Listing, error) {
	recs, err := g.client.GetActiveListings(ctx, offset, limit)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return listingsFromRecords(recs)
}

func (g *gatewayLedger) ListingsBySeller(ctx context.Context, seller string) ([]*Listing, error) {
	recs, err := g.client.GetListingsBySeller(ctx, seller)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return listingsFromRecords(recs)
}

func (g *gatewayLedger) Purchase(ctx context.Context, purchaseID string) (*Purchase, error) {
	rec, err := g.client.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return purchaseFromRecord(rec)
}

func (g *gatewayLedger) PurchasesByBuyer(ctx context.Context, buyer string) ([]*Purchase, error) {
	recs, err := g.client.GetPurchasesByBuyer(ctx, buyer)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return purchasesFromRecords(recs)
}

func (g *gatewayLedger) CompletedPurchasesByBuyer(ctx context.Context, buyer string) ([]*Purchase, error) {
	recs, err := g.client.GetCompletedPurchasesByBuyer(ctx, buyer)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return purchasesFromRecords(recs)
}

func (g *gatewayLedger) PendingPurchasesForSeller(ctx context.Context, seller string) ([]*Purchase, error) {
	recs, err := g.client.GetPendingPurchasesForSeller(ctx, seller)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return purchasesFromRecords(recs)
}

func (g *gatewayLedger) HasBuyerPurchased(ctx context.Context, listingID, buyer string) (bool, string, error) {
	ok, id, err := g.client.HasBuyerPurchased(ctx, listingID, buyer)
	return ok, id, wrapLedgerError(err)
}

func (g *gatewayLedger) Stats(ctx context.Context) (*Stats, error) {
	s, err := g.client.GetStats(ctx)
	if err != nil {
		return nil, wrapLedgerError(err)
	}
	return &Stats{TotalListings: s.TotalListings, TotalPurchases: s.TotalPurchases}, nil
}

func listingFromRecord(rec *ledger.ListingRecord) (*Listing, error) {
	pub, err := crypto.FromHex(rec.SellerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("listing %s: decode seller public key: %w", rec.ID, err)
	}
	digest, err := crypto.FromHex(rec.ContentDigest)
	if err != nil {
		return nil, fmt.Errorf("listing %s: decode content digest: %w", rec.ID, err)
	}
	return &Listing{
		ID:              rec.ID,
		Seller:          rec.Seller,
		SellerPublicKey: pub,
		ContentDigest:   digest,
		ContentLocator:  rec.ContentLocator,
		Title:           rec.Title,
		Description:     rec.Description,
		FileType:        rec.FileType,
		FileSize:        rec.FileSizeBytes,
		Price:           rec.Price,
		Category:        CategoryForFileType(rec.FileType),
		Active:          rec.Active,
		Sold:            rec.Sold,
		CreatedAt:       time.Unix(rec.CreatedAt, 0).UTC(),
	}, nil
}

func listingsFromRecords(recs []ledger.ListingRecord) ([]*Listing, error) {
	listings := make([]*Listing, 0, len(recs))
	for i := range recs {
		l, err := listingFromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func purchaseFromRecord(rec *ledger.PurchaseRecord) (*Purchase, error) {
	pub, err := crypto.FromHex(rec.BuyerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("purchase %s: decode buyer public key: %w", rec.ID, err)
	}

	var wrapped WrappedKey
	if rec.WrappedKey != "" {
		wrapped, err = WrappedKeyFromHex(rec.WrappedKey)
		if err != nil {
			return nil, fmt.Errorf("purchase %s: %w", rec.ID, err)
		}
	}

	p := &Purchase{
		ID:             rec.ID,
		ListingID:      rec.ListingID,
		Buyer:          rec.Buyer,
		BuyerPublicKey: pub,
		WrappedKey:     wrapped,
		Amount:         rec.Amount,
		Status:         PurchaseStatus(rec.Status),
		CreatedAt:      time.Unix(rec.CreatedAt, 0).UTC(),
	}
	if rec.AcceptedAt != 0 {
		p.AcceptedAt = time.Unix(rec.AcceptedAt, 0).UTC()
	}
	return p, nil
}

func purchasesFromRecords(recs []ledger.PurchaseRecord) ([]*Purchase, error) {
	purchases := make([]*Purchase, 0, len(recs))
	for i := range recs {
		p, err := purchaseFromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}
