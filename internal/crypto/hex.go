package crypto

import (
	"encoding/hex"
	"strings"
)

// ToHex encodes bytes as a lowercase hex string without a 0x prefix.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes a hex string, tolerating an optional 0x prefix as used
// by ledger gateways.
func FromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	return hex.DecodeString(s)
}
