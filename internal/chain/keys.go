package chain

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ParseAddress parses a base58 account address.
func ParseAddress(input string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(input)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid address %q", input)
	}
	return key, nil
}

// ParseSecretKeyJSON parses a keypair exported as a JSON byte array, the
// format solana-keygen writes: [12,34,...], 64 bytes.
func ParseSecretKeyJSON(input string) (solana.PrivateKey, error) {
	var raw []int
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, errors.Wrap(err, "secret key is not a JSON byte array")
	}
	if len(raw) != 64 {
		return nil, errors.Errorf("secret key must be 64 bytes, got %d", len(raw))
	}
	key := make(solana.PrivateKey, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("secret key byte %d out of range: %d", i, v)
		}
		key[i] = byte(v)
	}
	return key, nil
}
