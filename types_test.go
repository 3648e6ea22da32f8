package keyscrow

import (
	"errors"
	"strings"
	"testing"
)

func TestWrappedKey_Zero(t *testing.T) {
	var w WrappedKey
	if !w.IsZero() {
		t.Error("zero value should be the sentinel")
	}
	if w.Hex() != "0x"+strings.Repeat("0", 64) {
		t.Errorf("zero hex = %s", w.Hex())
	}

	w[0] = 1
	if w.IsZero() {
		t.Error("non-zero key reported as sentinel")
	}
}

func TestWrappedKey_HexRoundTrip(t *testing.T) {
	raw := make([]byte, WrappedKeySize)
	for i := range raw {
		raw[i] = byte(i)
	}

	w, err := WrappedKeyFromBytes(raw)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := WrappedKeyFromHex(w.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != w {
		t.Error("hex round trip changed the key")
	}

	// 0x prefix is optional.
	parsed, err = WrappedKeyFromHex(strings.TrimPrefix(w.Hex(), "0x"))
	if err != nil || parsed != w {
		t.Errorf("unprefixed parse = %v, %v", parsed, err)
	}
}

func TestWrappedKey_BadInput(t *testing.T) {
	if _, err := WrappedKeyFromBytes(make([]byte, 16)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short input error = %v, want ErrLengthMismatch", err)
	}
	if _, err := WrappedKeyFromHex("0xzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := WrappedKeyFromHex("0xdead"); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short hex error = %v, want ErrLengthMismatch", err)
	}
}

func TestListing_Purchasable(t *testing.T) {
	tests := []struct {
		name   string
		active bool
		sold   bool
		want   bool
	}{
		{"active unsold", true, false, true},
		{"inactive", false, false, false},
		{"sold", true, true, false},
		{"inactive sold", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{Active: tt.active, Sold: tt.sold}
			if got := l.Purchasable(); got != tt.want {
				t.Errorf("Purchasable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryForFileType(t *testing.T) {
	tests := []struct {
		fileType string
		want     Category
	}{
		{"png", CategoryImages},
		{".JPG", CategoryImages},
		{"image/webp", CategoryImages},
		{"mp4", CategoryVideos},
		{"pdf", CategoryDocuments},
		{"flac", CategoryAudio},
		{"glb", Category3DModels},
		{"parquet", CategoryDatasets},
		{"sol", CategoryCode},
		{"", CategoryOther},
		{"xyz", CategoryOther},
		{"application/octet-stream", CategoryOther},
	}
	for _, tt := range tests {
		if got := CategoryForFileType(tt.fileType); got != tt.want {
			t.Errorf("CategoryForFileType(%q) = %s, want %s", tt.fileType, got, tt.want)
		}
	}
}
