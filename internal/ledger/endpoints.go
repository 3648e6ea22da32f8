package ledger

import (
	"context"
	"fmt"
	"net/url"
)

// CreateListing publishes a new listing and returns its id.
func (c *Client) CreateListing(ctx context.Context, params *CreateListingParams) (string, error) {
	var result struct {
		ListingID string `json:"listingId"`
	}
	if err := c.do(ctx, "POST", "/v1/listings", params, &result); err != nil {
		return "", err
	}
	return result.ListingID, nil
}

// UpdateListing changes the mutable fields of an unsold listing. Seller-only.
func (c *Client) UpdateListing(ctx context.Context, listingID string, params *UpdateListingParams) error {
	path := fmt.Sprintf("/v1/listings/%s", url.PathEscape(listingID))
	return c.do(ctx, "PATCH", path, params, nil)
}

// DeactivateListing hides a listing from the active set. Seller-only,
// ignored once sold.
func (c *Client) DeactivateListing(ctx context.Context, listingID string) error {
	path := fmt.Sprintf("/v1/listings/%s/deactivate", url.PathEscape(listingID))
	return c.do(ctx, "POST", path, nil, nil)
}

// ReactivateListing returns a deactivated listing to the active set.
// Seller-only, ignored once sold.
func (c *Client) ReactivateListing(ctx context.Context, listingID string) error {
	path := fmt.Sprintf("/v1/listings/%s/reactivate", url.PathEscape(listingID))
	return c.do(ctx, "POST", path, nil, nil)
}

// EnsureAllowance authorizes the escrow to draw up to amount from the
// caller's token balance. Must cover the listing price before PurchaseListing.
func (c *Client) EnsureAllowance(ctx context.Context, amount uint64) error {
	body := struct {
		Amount uint64 `json:"amount"`
	}{Amount: amount}
	return c.do(ctx, "POST", "/v1/allowance", body, nil)
}

// PurchaseListing escrows the listing price and records the buyer's public
// key. Returns the new purchase id.
func (c *Client) PurchaseListing(ctx context.Context, listingID, buyerPublicKey string) (string, error) {
	body := struct {
		ListingID      string `json:"listingId"`
		BuyerPublicKey string `json:"buyerPublicKey"`
	}{ListingID: listingID, BuyerPublicKey: buyerPublicKey}

	var result struct {
		PurchaseID string `json:"purchaseId"`
	}
	if err := c.do(ctx, "POST", "/v1/purchases", body, &result); err != nil {
		return "", err
	}
	return result.PurchaseID, nil
}

// AcceptPurchase publishes the wrapped key, marks the purchase accepted and
// the listing sold, and releases escrowed funds to the seller. Seller-only,
// atomic on the ledger side.
func (c *Client) AcceptPurchase(ctx context.Context, purchaseID, wrappedKeyHex string) error {
	path := fmt.Sprintf("/v1/purchases/%s/accept", url.PathEscape(purchaseID))
	body := struct {
		WrappedKey string `json:"wrappedKey"`
	}{WrappedKey: wrappedKeyHex}
	return c.do(ctx, "POST", path, body, nil)
}

// CancelPurchase refunds the escrowed amount to the buyer. Buyer-only,
// valid only while the purchase is escrowed.
func (c *Client) CancelPurchase(ctx context.Context, purchaseID string) error {
	path := fmt.Sprintf("/v1/purchases/%s/cancel", url.PathEscape(purchaseID))
	return c.do(ctx, "POST", path, nil, nil)
}

// GetListing fetches a single listing record.
func (c *Client) GetListing(ctx context.Context, listingID string) (*ListingRecord, error) {
	path := fmt.Sprintf("/v1/listings/%s", url.PathEscape(listingID))
	var result ListingRecord
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetActiveListings pages through listings that are active and unsold.
func (c *Client) GetActiveListings(ctx context.Context, offset, limit int) ([]ListingRecord, error) {
	path := fmt.Sprintf("/v1/listings?offset=%d&limit=%d", offset, limit)
	var result struct {
		Listings []ListingRecord `json:"listings"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Listings, nil
}

// GetListingsBySeller fetches all listings owned by a seller identity.
func (c *Client) GetListingsBySeller(ctx context.Context, seller string) ([]ListingRecord, error) {
	path := fmt.Sprintf("/v1/sellers/%s/listings", url.PathEscape(seller))
	var result struct {
		Listings []ListingRecord `json:"listings"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Listings, nil
}

// GetPurchase fetches a single purchase record.
func (c *Client) GetPurchase(ctx context.Context, purchaseID string) (*PurchaseRecord, error) {
	path := fmt.Sprintf("/v1/purchases/%s", url.PathEscape(purchaseID))
	var result PurchaseRecord
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPurchasesByBuyer fetches every purchase a buyer has made.
func (c *Client) GetPurchasesByBuyer(ctx context.Context, buyer string) ([]PurchaseRecord, error) {
	path := fmt.Sprintf("/v1/buyers/%s/purchases", url.PathEscape(buyer))
	var result struct {
		Purchases []PurchaseRecord `json:"purchases"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Purchases, nil
}

// GetCompletedPurchasesByBuyer fetches a buyer's accepted purchases.
func (c *Client) GetCompletedPurchasesByBuyer(ctx context.Context, buyer string) ([]PurchaseRecord, error) {
	path := fmt.Sprintf("/v1/buyers/%s/purchases?status=accepted", url.PathEscape(buyer))
	var result struct {
		Purchases []PurchaseRecord `json:"purchases"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Purchases, nil
}

// GetPendingPurchasesForSeller fetches escrowed purchases awaiting the
// seller's decision across all of the seller's listings.
func (c *Client) GetPendingPurchasesForSeller(ctx context.Context, seller string) ([]PurchaseRecord, error) {
	path := fmt.Sprintf("/v1/sellers/%s/purchases?status=escrowed", url.PathEscape(seller))
	var result struct {
		Purchases []PurchaseRecord `json:"purchases"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Purchases, nil
}

// HasBuyerPurchased reports whether the buyer holds an accepted purchase on
// the listing, and its id if so.
func (c *Client) HasBuyerPurchased(ctx context.Context, listingID, buyer string) (bool, string, error) {
	path := fmt.Sprintf("/v1/listings/%s/buyers/%s", url.PathEscape(listingID), url.PathEscape(buyer))
	var result struct {
		HasAccepted bool   `json:"hasAccepted"`
		PurchaseID  string `json:"purchaseId"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return false, "", err
	}
	return result.HasAccepted, result.PurchaseID, nil
}

// GetStats fetches the gateway's global listing/purchase counters.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var result Stats
	if err := c.do(ctx, "GET", "/v1/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
