package keyscrow

import (
	"errors"
	"fmt"

	"github.com/keyscrow/client-go/internal/crypto"
	"github.com/keyscrow/client-go/internal/ledger"
	"github.com/keyscrow/client-go/keystore"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingIdentity is returned when no wallet identity is provided.
	ErrMissingIdentity = errors.New("wallet identity is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrKeyGeneration is returned when the randomness source is unavailable.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidKey is returned when a key is malformed or off-curve.
	ErrInvalidKey = errors.New("invalid key")

	// ErrLengthMismatch is returned when a wrap operand does not have the
	// required fixed 32-byte width.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIntegrity is returned when authenticated decryption fails: wrong
	// key, truncated or tampered ciphertext. The content is unusable.
	ErrIntegrity = errors.New("content integrity check failed")

	// ErrDigestMismatch matches the IntegrityWarning returned when
	// decryption succeeds but the plaintext does not hash to the listed
	// digest. The plaintext is still returned; the sale is already final.
	ErrDigestMismatch = errors.New("content digest mismatch")

	// ErrKeyNotFound is returned when the seller's local content key for a
	// listing is missing. Without it the sale can never be fulfilled.
	ErrKeyNotFound = errors.New("content key not found")

	// ErrSelfPurchase is returned when a buyer attempts to purchase their
	// own listing.
	ErrSelfPurchase = errors.New("cannot purchase own listing")

	// ErrDuplicatePurchase is returned when the buyer already has a
	// pending purchase on the listing.
	ErrDuplicatePurchase = errors.New("purchase already pending for this listing")

	// ErrInsufficientFunds is returned when escrow funding fails.
	ErrInsufficientFunds = errors.New("insufficient funds for escrow")

	// ErrAlreadyAccepted is returned when accepting a purchase on a
	// listing that another purchase already sold.
	ErrAlreadyAccepted = errors.New("listing already sold to another purchase")

	// ErrNotPending is returned for transitions that require an escrowed
	// purchase: cancel after accept, accept after cancel.
	ErrNotPending = errors.New("purchase is not pending")

	// ErrNotAccepted is returned when fulfilment is attempted before the
	// seller has accepted and published the wrapped key.
	ErrNotAccepted = errors.New("purchase has not been accepted")

	// ErrListingInactive is returned when purchasing a deactivated listing.
	ErrListingInactive = errors.New("listing is not active")

	// ErrListingSold is returned when purchasing a sold listing.
	ErrListingSold = errors.New("listing is sold")

	// ErrNotSeller is returned when a seller-only call is made by another
	// identity.
	ErrNotSeller = errors.New("caller is not the listing seller")

	// ErrNotBuyer is returned when a buyer-only call is made by another
	// identity.
	ErrNotBuyer = errors.New("caller is not the purchase buyer")

	// ErrListingNotFound is returned when a listing does not exist.
	ErrListingNotFound = errors.New("listing not found")

	// ErrPurchaseNotFound is returned when a purchase does not exist.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrLedgerRejected matches any ledger-side validation failure.
	ErrLedgerRejected = errors.New("ledger rejected the transaction")

	// ErrContentNotFound is returned when the content store has no blob
	// for a listing's locator.
	ErrContentNotFound = errors.New("content not found")

	// ErrWaitTimeout is returned when a wait operation gives up before
	// the awaited state change appears on the ledger.
	ErrWaitTimeout = errors.New("timed out waiting for ledger state")
)

// KeyscrowError is implemented by all SDK error types.
type KeyscrowError interface {
	error
	KeyscrowError() // marker method
}

// LedgerError is a ledger-side rejection translated into the SDK
// taxonomy. Recorded state is unchanged; retrying with corrected input
// or funds may succeed. Use errors.Is with the sentinels above rather
// than matching Reason strings.
type LedgerError struct {
	Reason  string
	Message string
}

func (e *LedgerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger rejected (%s): %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("ledger rejected (%s)", e.Reason)
}

// KeyscrowError implements the KeyscrowError interface.
func (e *LedgerError) KeyscrowError() {}

// Is implements errors.Is for sentinel error matching.
func (e *LedgerError) Is(target error) bool {
	if target == ErrLedgerRejected {
		return true
	}
	switch ledger.Reason(e.Reason) {
	case ledger.ReasonSelfPurchase:
		return target == ErrSelfPurchase
	case ledger.ReasonDuplicatePurchase:
		return target == ErrDuplicatePurchase
	case ledger.ReasonInsufficientFunds:
		return target == ErrInsufficientFunds
	case ledger.ReasonAlreadyAccepted:
		return target == ErrAlreadyAccepted
	case ledger.ReasonNotPending:
		return target == ErrNotPending
	case ledger.ReasonListingInactive:
		return target == ErrListingInactive
	case ledger.ReasonListingSold:
		return target == ErrListingSold
	case ledger.ReasonNotSeller:
		return target == ErrNotSeller
	case ledger.ReasonNotBuyer:
		return target == ErrNotBuyer
	case ledger.ReasonListingNotFound:
		return target == ErrListingNotFound
	case ledger.ReasonPurchaseNotFound:
		return target == ErrPurchaseNotFound
	}
	return false
}

// NetworkError represents a transport-level failure reaching the ledger
// gateway. The outcome of a submitted write is unknown until state is
// re-read.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// KeyscrowError implements the KeyscrowError interface.
func (e *NetworkError) KeyscrowError() {}

// IntegrityWarning reports that fulfilled content decrypted and
// authenticated correctly but does not hash to the listing's digest.
// This is a seller-honesty caveat, not a security gate: the escrow
// transaction is already final and the plaintext is returned alongside
// this error.
type IntegrityWarning struct {
	ListingID string
	Expected  []byte // digest recorded on the listing
	Actual    []byte // digest of the decrypted plaintext
}

func (e *IntegrityWarning) Error() string {
	return fmt.Sprintf("listing %s: decrypted content does not match the listed digest", e.ListingID)
}

// Is implements errors.Is for sentinel error matching.
func (e *IntegrityWarning) Is(target error) bool {
	return target == ErrDigestMismatch
}

// KeyscrowError implements the KeyscrowError interface.
func (e *IntegrityWarning) KeyscrowError() {}

// wrapLedgerError converts internal adapter errors to public types so
// that errors.Is() works against the sentinel taxonomy.
func wrapLedgerError(err error) error {
	if err == nil {
		return nil
	}

	if rej, ok := ledger.AsRejection(err); ok {
		return &LedgerError{
			Reason:  string(rej.Reason),
			Message: rej.Message,
		}
	}

	var netErr *ledger.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

// wrapCryptoError converts internal crypto errors to public sentinels.
func wrapCryptoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, crypto.ErrKeyGeneration):
		return fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	case errors.Is(err, crypto.ErrInvalidPrivateKeySize),
		errors.Is(err, crypto.ErrInvalidPublicKeySize),
		errors.Is(err, crypto.ErrPublicKeyMismatch),
		errors.Is(err, crypto.ErrInvalidSharedPoint):
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	case errors.Is(err, crypto.ErrInvalidKeySize):
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	case errors.Is(err, crypto.ErrLengthMismatch):
		return ErrLengthMismatch
	case errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, crypto.ErrCiphertextTooShort):
		return ErrIntegrity
	}
	return err
}

// wrapKeyStoreError converts keystore lookups into the public taxonomy.
func wrapKeyStoreError(err error) error {
	if errors.Is(err, keystore.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
