package keyscrow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/keyscrow/client-go/internal/crypto"
)

// RequestPurchase escrows the listing price under the buyer's public
// key. The seller sees the purchase as pending and may accept it; until
// then the buyer can cancel for a full refund.
//
// Fails with ErrSelfPurchase on the buyer's own listing and with
// ErrDuplicatePurchase when an escrowed purchase already exists. The
// returned Purchase is re-read from the ledger.
func (c *Client) RequestPurchase(ctx context.Context, listingID string) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	listing, err := c.ledger.Listing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Seller == c.identity {
		return nil, ErrSelfPurchase
	}
	if listing.Sold {
		return nil, ErrListingSold
	}
	if !listing.Active {
		return nil, ErrListingInactive
	}

	kp, err := c.keys.EnsureKeyPair(c.identity)
	if err != nil {
		return nil, err
	}

	// The escrow draws the price from the buyer's balance; make sure
	// the allowance covers it first.
	if err := c.ledger.EnsureAllowance(ctx, listing.Price); err != nil {
		return nil, err
	}

	purchaseID, err := c.ledger.PurchaseListing(ctx, listingID, kp.PublicKey)
	if err != nil {
		return nil, err
	}

	return c.ledger.Purchase(ctx, purchaseID)
}

// CancelPurchase withdraws an escrowed purchase and refunds the buyer.
// Fails with ErrNotPending once the purchase is accepted or already
// cancelled. The returned Purchase is re-read from the ledger.
func (c *Client) CancelPurchase(ctx context.Context, purchaseID string) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := c.ledger.CancelPurchase(ctx, purchaseID); err != nil {
		return nil, err
	}
	return c.ledger.Purchase(ctx, purchaseID)
}

// FulfillPurchase downloads, unwraps and decrypts the content of an
// accepted purchase.
//
// When decryption authenticates but the plaintext does not hash to the
// listing's digest, the plaintext is returned together with a non-nil
// *IntegrityWarning (matching ErrDigestMismatch): the content is what
// the seller encrypted, just not what the listing promised. Any other
// non-nil error means no usable content.
func (c *Client) FulfillPurchase(ctx context.Context, purchaseID string) ([]byte, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	purchase, err := c.ledger.Purchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != PurchaseAccepted || purchase.WrappedKey.IsZero() {
		return nil, ErrNotAccepted
	}

	listing, err := c.ledger.Listing(ctx, purchase.ListingID)
	if err != nil {
		return nil, err
	}

	encrypted, err := c.store.Get(ctx, listing.ContentLocator)
	if err != nil {
		return nil, fmt.Errorf("download content: %w", err)
	}

	kp, err := c.keys.EnsureKeyPair(c.identity)
	if err != nil {
		return nil, err
	}

	contentKey, err := crypto.UnwrapKey(purchase.WrappedKey[:], kp.PrivateKey, listing.SellerPublicKey)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	content, err := crypto.Decrypt(contentKey, encrypted)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	if actual := crypto.Digest(content); !bytes.Equal(actual, listing.ContentDigest) {
		return content, &IntegrityWarning{
			ListingID: listing.ID,
			Expected:  listing.ContentDigest,
			Actual:    actual,
		}
	}
	return content, nil
}

// VerifyContentAvailable reports whether a listing's encrypted blob can
// currently be fetched from the content store. Useful before escrowing
// funds on a listing whose content may have been unpinned.
func (c *Client) VerifyContentAvailable(ctx context.Context, listingID string) (bool, error) {
	if err := c.checkClosed(); err != nil {
		return false, err
	}
	listing, err := c.ledger.Listing(ctx, listingID)
	if err != nil {
		return false, err
	}
	return c.store.Available(ctx, listing.ContentLocator)
}
