package keyscrow

import "context"

// Listing fetches current ledger state for one listing.
func (c *Client) Listing(ctx context.Context, listingID string) (*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.Listing(ctx, listingID)
}

// ActiveListings pages through listings that are active and unsold.
func (c *Client) ActiveListings(ctx context.Context, offset, limit int) ([]*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.ActiveListings(ctx, offset, limit)
}

// MyListings fetches all listings published by this client's identity,
// regardless of state.
func (c *Client) MyListings(ctx context.Context) ([]*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.ListingsBySeller(ctx, c.identity)
}

// Purchase fetches current ledger state for one purchase.
func (c *Client) Purchase(ctx context.Context, purchaseID string) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.Purchase(ctx, purchaseID)
}

// MyPurchases fetches every purchase this identity has made.
func (c *Client) MyPurchases(ctx context.Context) ([]*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.PurchasesByBuyer(ctx, c.identity)
}

// CompletedPurchases fetches this identity's accepted purchases, the
// ones whose content can be fulfilled.
func (c *Client) CompletedPurchases(ctx context.Context) ([]*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.CompletedPurchasesByBuyer(ctx, c.identity)
}

// PendingPurchases fetches escrowed purchases awaiting this identity's
// decision as a seller, across all of its listings.
func (c *Client) PendingPurchases(ctx context.Context) ([]*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.PendingPurchasesForSeller(ctx, c.identity)
}

// HasPurchased reports whether this identity holds an accepted purchase
// on the listing, and its id if so.
func (c *Client) HasPurchased(ctx context.Context, listingID string) (bool, string, error) {
	if err := c.checkClosed(); err != nil {
		return false, "", err
	}
	return c.ledger.HasBuyerPurchased(ctx, listingID, c.identity)
}

// Stats fetches the ledger's global listing and purchase counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	return c.ledger.Stats(ctx)
}
