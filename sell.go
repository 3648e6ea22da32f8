package keyscrow

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyscrow/client-go/internal/crypto"
)

// CreateListing encrypts content under a fresh symmetric key, uploads
// the ciphertext to the content store and publishes the listing on the
// ledger. The content key is persisted in the local key store under the
// new listing's id; losing it makes the sale unfulfillable.
//
// The returned Listing is re-read from the ledger after publication.
func (c *Client) CreateListing(ctx context.Context, content []byte, meta ListingMetadata) (*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content is required")
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if meta.Price == 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	kp, err := c.keys.EnsureKeyPair(c.identity)
	if err != nil {
		return nil, err
	}

	contentKey, err := crypto.GenerateContentKey()
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	// Digest the plaintext before encryption so buyers can verify what
	// they decrypt against the ledger record.
	digest := crypto.Digest(content)

	encrypted, err := crypto.Encrypt(contentKey, content)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	locator, err := c.store.Put(ctx, encrypted)
	if err != nil {
		return nil, fmt.Errorf("upload content: %w", err)
	}

	listingID, err := c.ledger.CreateListing(ctx, CreateListingParams{
		SellerPublicKey: kp.PublicKey,
		ContentDigest:   digest,
		ContentLocator:  locator,
		Title:           meta.Title,
		Description:     meta.Description,
		FileType:        meta.FileType,
		FileSize:        int64(len(content)),
		Price:           meta.Price,
	})
	if err != nil {
		return nil, err
	}

	// The listing is live; the content key must outlive this process or
	// no purchase can ever be accepted.
	if err := c.keyStore.SetContentKey(c.identity, listingID, contentKey); err != nil {
		return nil, fmt.Errorf("listing %s published but content key not persisted: %w", listingID, err)
	}

	return c.ledger.Listing(ctx, listingID)
}

// UpdateListing changes the title, description or price of an unsold
// listing. Content, digest and locator are immutable; publish a new
// listing to change them.
func (c *Client) UpdateListing(ctx context.Context, listingID string, update ListingUpdate) (*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := c.ledger.UpdateListing(ctx, listingID, update); err != nil {
		return nil, err
	}
	return c.ledger.Listing(ctx, listingID)
}

// DeactivateListing hides a listing from buyers without deleting it.
// Escrowed purchases on it remain decidable.
func (c *Client) DeactivateListing(ctx context.Context, listingID string) (*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := c.ledger.DeactivateListing(ctx, listingID); err != nil {
		return nil, err
	}
	return c.ledger.Listing(ctx, listingID)
}

// ReactivateListing restores a deactivated listing to the active set.
func (c *Client) ReactivateListing(ctx context.Context, listingID string) (*Listing, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := c.ledger.ReactivateListing(ctx, listingID); err != nil {
		return nil, err
	}
	return c.ledger.Listing(ctx, listingID)
}

// AcceptPurchase completes a sale: the listing's content key is wrapped
// for the purchase's buyer and published on the ledger, which releases
// the escrowed funds and marks the listing sold. Only the purchase that
// is accepted fulfils; all other escrowed purchases on the listing must
// be cancelled by their buyers.
//
// Fails with ErrKeyNotFound when the local content key for the listing
// is gone. The returned Purchase is re-read from the ledger.
func (c *Client) AcceptPurchase(ctx context.Context, purchaseID string) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	purchase, err := c.ledger.Purchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != PurchaseEscrowed {
		return nil, ErrNotPending
	}

	contentKey, err := c.keyStore.ContentKey(c.identity, purchase.ListingID)
	if err != nil {
		return nil, wrapKeyStoreError(err)
	}

	kp, err := c.keys.EnsureKeyPair(c.identity)
	if err != nil {
		return nil, err
	}

	wrappedBytes, err := crypto.WrapKey(contentKey, kp.PrivateKey, purchase.BuyerPublicKey)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	wrapped, err := WrappedKeyFromBytes(wrappedBytes)
	if err != nil {
		return nil, err
	}
	if wrapped.IsZero() {
		// Astronomically unlikely, but the ledger treats all-zero as
		// "not published" so it must never be submitted.
		return nil, fmt.Errorf("wrapped key collided with the zero sentinel")
	}

	if err := c.ledger.AcceptPurchase(ctx, purchaseID, wrapped); err != nil {
		return nil, err
	}

	return c.ledger.Purchase(ctx, purchaseID)
}

// DiscardContentKey deletes the local content key for a listing. Do
// this only after the sale is accepted (or the listing abandoned);
// afterwards the listing can never be fulfilled.
func (c *Client) DiscardContentKey(listingID string) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.keyStore.DeleteContentKey(c.identity, listingID)
}

// HasContentKey reports whether the local key store still holds the
// content key for a listing.
func (c *Client) HasContentKey(listingID string) (bool, error) {
	if err := c.checkClosed(); err != nil {
		return false, err
	}
	_, err := c.keyStore.ContentKey(c.identity, listingID)
	if err == nil {
		return true, nil
	}
	if errors.Is(wrapKeyStoreError(err), ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
