package chain

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestParseSecretKeyJSON(t *testing.T) {
	wallet := solana.NewWallet()

	// The numeric array form solana-keygen writes.
	ints := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		ints[i] = int(b)
	}
	enc, err := json.Marshal(ints)
	if err != nil {
		t.Fatal(err)
	}

	key, err := ParseSecretKeyJSON(string(enc))
	if err != nil {
		t.Fatalf("expected key to parse, got %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Fatalf("parsed key has wrong public key: %s != %s", key.PublicKey(), wallet.PublicKey())
	}
}

func TestParseSecretKeyJSONRejectsBadInput(t *testing.T) {
	for _, input := range []string{
		"",
		"not json",
		"[1,2,3]",
		`"c2VjcmV0"`,
	} {
		if _, err := ParseSecretKeyJSON(input); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestParseAddress(t *testing.T) {
	pk := solana.NewWallet().PublicKey()
	got, err := ParseAddress(pk.String())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equals(pk) {
		t.Fatalf("round trip mismatch: %s != %s", got, pk)
	}

	if _, err := ParseAddress("definitely-not-base58!"); err == nil {
		t.Fatal("expected error for malformed address")
	}
}
