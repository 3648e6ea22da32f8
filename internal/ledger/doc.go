// Package ledger is the HTTP adapter for the escrow ledger gateway.
//
// The ledger is an append-only, publicly readable record store with atomic
// state transitions and an escrow balance. This package speaks the gateway's
// JSON surface and translates its rejection reasons into typed errors; it
// holds no protocol logic of its own. State transitions returned by the
// gateway are final, so callers re-read records after every write instead
// of assuming success.
package ledger
