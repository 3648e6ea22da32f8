package keyscrow

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeLedger is an in-memory ledger enforcing the same transition rules
// as the gateway. Views bound to different identities share its state,
// so one fake can back a seller client and a buyer client at once.
type fakeLedger struct {
	mu         sync.Mutex
	listings   map[string]*Listing
	purchases  map[string]*Purchase
	balances   map[string]uint64
	allowances map[string]uint64
	nextID     int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		listings:   make(map[string]*Listing),
		purchases:  make(map[string]*Purchase),
		balances:   make(map[string]uint64),
		allowances: make(map[string]uint64),
	}
}

// fund credits an identity's token balance.
func (f *fakeLedger) fund(identity string, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[identity] += amount
}

func (f *fakeLedger) balance(identity string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[identity]
}

// forIdentity returns a Ledger view whose writes are attributed to the
// given identity.
func (f *fakeLedger) forIdentity(identity string) Ledger {
	return &fakeLedgerView{f: f, identity: identity}
}

type fakeLedgerView struct {
	f        *fakeLedger
	identity string
}

func (v *fakeLedgerView) CreateListing(_ context.Context, params CreateListingParams) (string, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	v.f.nextID++
	id := fmt.Sprintf("listing-%d", v.f.nextID)
	v.f.listings[id] = &Listing{
		ID:              id,
		Seller:          v.identity,
		SellerPublicKey: append([]byte(nil), params.SellerPublicKey...),
		ContentDigest:   append([]byte(nil), params.ContentDigest...),
		ContentLocator:  params.ContentLocator,
		Title:           params.Title,
		Description:     params.Description,
		FileType:        params.FileType,
		FileSize:        params.FileSize,
		Price:           params.Price,
		Category:        CategoryForFileType(params.FileType),
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}
	return id, nil
}

func (v *fakeLedgerView) UpdateListing(_ context.Context, listingID string, update ListingUpdate) error {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	l, ok := v.f.listings[listingID]
	if !ok {
		return ErrListingNotFound
	}
	if l.Seller != v.identity {
		return ErrNotSeller
	}
	if l.Sold {
		return ErrListingSold
	}
	if update.Title != "" {
		l.Title = update.Title
	}
	if update.Description != "" {
		l.Description = update.Description
	}
	if update.Price != 0 {
		l.Price = update.Price
	}
	return nil
}

func (v *fakeLedgerView) DeactivateListing(_ context.Context, listingID string) error {
	return v.setActive(listingID, false)
}

func (v *fakeLedgerView) ReactivateListing(_ context.Context, listingID string) error {
	return v.setActive(listingID, true)
}

func (v *fakeLedgerView) setActive(listingID string, active bool) error {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	l, ok := v.f.listings[listingID]
	if !ok {
		return ErrListingNotFound
	}
	if l.Seller != v.identity {
		return ErrNotSeller
	}
	if l.Sold {
		return ErrListingSold
	}
	l.Active = active
	return nil
}

func (v *fakeLedgerView) EnsureAllowance(_ context.Context, amount uint64) error {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if v.f.allowances[v.identity] < amount {
		v.f.allowances[v.identity] = amount
	}
	return nil
}

func (v *fakeLedgerView) PurchaseListing(_ context.Context, listingID string, buyerPublicKey []byte) (string, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	l, ok := v.f.listings[listingID]
	if !ok {
		return "", ErrListingNotFound
	}
	if l.Seller == v.identity {
		return "", ErrSelfPurchase
	}
	if l.Sold {
		return "", ErrListingSold
	}
	if !l.Active {
		return "", ErrListingInactive
	}
	for _, p := range v.f.purchases {
		if p.ListingID == listingID && p.Buyer == v.identity && p.Status == PurchaseEscrowed {
			return "", ErrDuplicatePurchase
		}
	}
	if v.f.allowances[v.identity] < l.Price || v.f.balances[v.identity] < l.Price {
		return "", ErrInsufficientFunds
	}
	v.f.balances[v.identity] -= l.Price

	v.f.nextID++
	id := fmt.Sprintf("purchase-%d", v.f.nextID)
	v.f.purchases[id] = &Purchase{
		ID:             id,
		ListingID:      listingID,
		Buyer:          v.identity,
		BuyerPublicKey: append([]byte(nil), buyerPublicKey...),
		Amount:         l.Price,
		Status:         PurchaseEscrowed,
		CreatedAt:      time.Now().UTC(),
	}
	return id, nil
}

func (v *fakeLedgerView) AcceptPurchase(_ context.Context, purchaseID string, wrapped WrappedKey) error {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	p, ok := v.f.purchases[purchaseID]
	if !ok {
		return ErrPurchaseNotFound
	}
	l := v.f.listings[p.ListingID]
	if l.Seller != v.identity {
		return ErrNotSeller
	}
	if l.Sold {
		return ErrAlreadyAccepted
	}
	if p.Status != PurchaseEscrowed {
		return ErrNotPending
	}
	if wrapped.IsZero() {
		return &LedgerError{Reason: "invalid_input", Message: "wrapped key is zero"}
	}

	p.Status = PurchaseAccepted
	p.WrappedKey = wrapped
	p.AcceptedAt = time.Now().UTC()
	l.Sold = true
	v.f.balances[l.Seller] += p.Amount
	return nil
}

func (v *fakeLedgerView) CancelPurchase(_ context.Context, purchaseID string) error {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()

	p, ok := v.f.purchases[purchaseID]
	if !ok {
		return ErrPurchaseNotFound
	}
	if p.Buyer != v.identity {
		return ErrNotBuyer
	}
	if p.Status != PurchaseEscrowed {
		return ErrNotPending
	}
	p.Status = PurchaseCancelled
	v.f.balances[p.Buyer] += p.Amount
	return nil
}

func (v *fakeLedgerView) Listing(_ context.Context, listingID string) (*Listing, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	l, ok := v.f.listings[listingID]
	if !ok {
		return nil, ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (v *fakeLedgerView) ActiveListings(_ context.Context, offset, limit int) ([]*Listing, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	var out []*Listing
	for _, l := range v.f.listings {
		if l.Active && !l.Sold {
			cp := *l
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *fakeLedgerView) ListingsBySeller(_ context.Context, seller string) ([]*Listing, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	var out []*Listing
	for _, l := range v.f.listings {
		if l.Seller == seller {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (v *fakeLedgerView) Purchase(_ context.Context, purchaseID string) (*Purchase, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	p, ok := v.f.purchases[purchaseID]
	if !ok {
		return nil, ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (v *fakeLedgerView) PurchasesByBuyer(_ context.Context, buyer string) ([]*Purchase, error) {
	return v.purchasesWhere(func(p *Purchase) bool { return p.Buyer == buyer })
}

func (v *fakeLedgerView) CompletedPurchasesByBuyer(_ context.Context, buyer string) ([]*Purchase, error) {
	return v.purchasesWhere(func(p *Purchase) bool {
		return p.Buyer == buyer && p.Status == PurchaseAccepted
	})
}

func (v *fakeLedgerView) PendingPurchasesForSeller(_ context.Context, seller string) ([]*Purchase, error) {
	return v.purchasesWhere(func(p *Purchase) bool {
		l := v.f.listings[p.ListingID]
		return l != nil && l.Seller == seller && p.Status == PurchaseEscrowed
	})
}

func (v *fakeLedgerView) purchasesWhere(match func(*Purchase) bool) ([]*Purchase, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	var out []*Purchase
	for _, p := range v.f.purchases {
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (v *fakeLedgerView) HasBuyerPurchased(_ context.Context, listingID, buyer string) (bool, string, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	for _, p := range v.f.purchases {
		if p.ListingID == listingID && p.Buyer == buyer && p.Status == PurchaseAccepted {
			return true, p.ID, nil
		}
	}
	return false, "", nil
}

func (v *fakeLedgerView) Stats(_ context.Context) (*Stats, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	return &Stats{
		TotalListings:  len(v.f.listings),
		TotalPurchases: len(v.f.purchases),
	}, nil
}

// fakeContentStore is an in-memory blob store.
type fakeContentStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	next  int
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{blobs: make(map[string][]byte)}
}

func (s *fakeContentStore) Put(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	locator := fmt.Sprintf("blob-%d", s.next)
	s.blobs[locator] = append([]byte(nil), data...)
	return locator, nil
}

func (s *fakeContentStore) Get(_ context.Context, locator string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, locator)
	}
	return append([]byte(nil), data...), nil
}

func (s *fakeContentStore) Available(_ context.Context, locator string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[locator]
	return ok, nil
}

// set overwrites a blob in place, simulating store-side tampering.
func (s *fakeContentStore) set(locator string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[locator] = append([]byte(nil), data...)
}
