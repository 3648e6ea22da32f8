// Package keyscrow is a client SDK for a trustless encrypted-content
// marketplace. Sellers publish content encrypted under a per-listing
// symmetric key; buyers escrow funds against a listing; the seller
// releases the funds by publishing the content key wrapped for that
// buyer, and the buyer decrypts locally. Neither the ledger nor the
// content store ever sees plaintext or usable key material.
//
// Key exchange uses X25519 with an HKDF-SHA-256 derived shared secret;
// content is encrypted with AES-256-GCM; the wrapped key is the content
// key XORed with the shared secret, a fixed 32-byte value that fits the
// ledger's bytes32 field.
//
// Selling:
//
//	client, err := keyscrow.New("0xseller...",
//	    keyscrow.WithNetwork(keyscrow.NetworkTestnet),
//	    keyscrow.WithKeyStorePath("/var/lib/keyscrow"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	listing, err := client.CreateListing(ctx, content, keyscrow.ListingMetadata{
//	    Title:    "Aerial survey dataset",
//	    FileType: "parquet",
//	    Price:    5_000_000, // 5 USDT
//	})
//
//	purchase, err := client.WaitForPendingPurchase(ctx, listing.ID)
//	if err == nil {
//	    _, err = client.AcceptPurchase(ctx, purchase.ID)
//	}
//
// Buying:
//
//	purchase, err := client.RequestPurchase(ctx, listingID)
//	purchase, err = client.WaitForAcceptance(ctx, purchase.ID)
//	content, err := client.FulfillPurchase(ctx, purchase.ID)
//	if errors.Is(err, keyscrow.ErrDigestMismatch) {
//	    // content decrypted but differs from what the listing promised
//	}
//
// The ledger is the sole source of truth: the client re-reads state
// after every write and never caches listing or purchase records.
// Losing a listing's local content key before the sale is accepted
// makes that sale permanently unfulfillable, so sellers should always
// use a persistent key store.
package keyscrow
