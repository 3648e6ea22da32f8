package keyscrow

import (
	"context"
	"errors"
	"time"
)

// WaitForDecision polls the ledger until a purchase leaves the escrowed
// state and returns it. The caller inspects Status to distinguish
// acceptance from cancellation. Polling backs off from the initial
// interval up to the configured cap.
//
// Returns ErrWaitTimeout when the wait budget runs out, or ctx.Err()
// when the caller's context ends first.
func (c *Client) WaitForDecision(ctx context.Context, purchaseID string, opts ...WaitOption) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	return c.pollPurchase(ctx, purchaseID, opts, func(p *Purchase) bool {
		return p.Status != PurchaseEscrowed
	})
}

// WaitForAcceptance polls the ledger until the purchase is accepted and
// its wrapped key is published, then returns it ready for
// FulfillPurchase. Returns ErrNotPending immediately if the purchase is
// cancelled while waiting.
func (c *Client) WaitForAcceptance(ctx context.Context, purchaseID string, opts ...WaitOption) (*Purchase, error) {
	purchase, err := c.WaitForDecision(ctx, purchaseID, opts...)
	if err != nil {
		return nil, err
	}
	if purchase.Status != PurchaseAccepted {
		return nil, ErrNotPending
	}
	return purchase, nil
}

// WaitForPendingPurchase polls the ledger until an escrowed purchase
// appears on one of this seller's listings and returns it. Pass a
// listingID to wait on one listing, or "" for any.
func (c *Client) WaitForPendingPurchase(ctx context.Context, listingID string, opts ...WaitOption) (*Purchase, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := defaultWaitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel, timedOut := withWaitBudget(ctx, cfg.timeout)
	defer cancel()

	interval := cfg.pollInterval
	for {
		pending, err := c.ledger.PendingPurchasesForSeller(ctx, c.identity)
		if err != nil {
			if waitErr := translateWaitErr(ctx, err, timedOut); waitErr != nil {
				return nil, waitErr
			}
			return nil, err
		}
		for _, p := range pending {
			if listingID == "" || p.ListingID == listingID {
				return p, nil
			}
		}

		if err := sleepCtx(ctx, interval); err != nil {
			return nil, translateWaitErr(ctx, err, timedOut)
		}
		interval = nextInterval(interval, cfg)
	}
}

func (c *Client) pollPurchase(ctx context.Context, purchaseID string, opts []WaitOption, done func(*Purchase) bool) (*Purchase, error) {
	cfg := defaultWaitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel, timedOut := withWaitBudget(ctx, cfg.timeout)
	defer cancel()

	interval := cfg.pollInterval
	for {
		purchase, err := c.ledger.Purchase(ctx, purchaseID)
		if err != nil {
			if waitErr := translateWaitErr(ctx, err, timedOut); waitErr != nil {
				return nil, waitErr
			}
			return nil, err
		}
		if done(purchase) {
			return purchase, nil
		}

		if err := sleepCtx(ctx, interval); err != nil {
			return nil, translateWaitErr(ctx, err, timedOut)
		}
		interval = nextInterval(interval, cfg)
	}
}

// withWaitBudget wraps ctx with the wait timeout and returns a probe
// for whether a later context error came from that budget rather than
// the caller's own context.
func withWaitBudget(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, func() bool) {
	if timeout <= 0 {
		return ctx, func() {}, func() bool { return false }
	}
	deadline := time.Now().Add(timeout)
	waitCtx, cancel := context.WithDeadline(ctx, deadline)
	timedOut := func() bool {
		return waitCtx.Err() != nil && ctx.Err() == nil
	}
	return waitCtx, cancel, timedOut
}

func translateWaitErr(ctx context.Context, err error, timedOut func() bool) error {
	if ctx.Err() == nil && !timedOut() {
		return nil
	}
	if timedOut() {
		return ErrWaitTimeout
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err()
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func nextInterval(current time.Duration, cfg waitConfig) time.Duration {
	next := time.Duration(float64(current) * cfg.multiplier)
	if cfg.maxInterval > 0 && next > cfg.maxInterval {
		next = cfg.maxInterval
	}
	return next
}
