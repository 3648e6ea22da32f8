package ledger

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable rejection code from the gateway. The ledger
// enforces the state machine; the client only translates its verdicts.
type Reason string

const (
	ReasonSelfPurchase      Reason = "self_purchase"
	ReasonDuplicatePurchase Reason = "duplicate_purchase"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonAlreadyAccepted   Reason = "already_accepted"
	ReasonNotPending        Reason = "not_pending"
	ReasonListingInactive   Reason = "listing_inactive"
	ReasonListingSold       Reason = "listing_sold"
	ReasonNotSeller         Reason = "not_seller"
	ReasonNotBuyer          Reason = "not_buyer"
	ReasonListingNotFound   Reason = "listing_not_found"
	ReasonPurchaseNotFound  Reason = "purchase_not_found"
	ReasonInvalidInput      Reason = "invalid_input"
)

// RejectionError is a ledger-side validation failure. The transaction did
// not happen; the recorded state is unchanged.
type RejectionError struct {
	StatusCode int
	Reason     Reason
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger rejected (%s): %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("ledger rejected (%s)", e.Reason)
}

// NetworkError represents a transport-level failure reaching the gateway.
// The outcome of the submitted transaction is unknown; callers must re-read
// state rather than treat this as success or failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ledger network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsRejection returns the RejectionError inside err, if any.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
