// Package chain wraps the Solana RPC surface the relay depends on behind a
// small interface so the transaction logic can be exercised against a fake
// network in tests.
package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Existence is what an account lookup could establish. A lookup that errors
// for any reason other than a clean not-found leaves us at Unknown: the
// builder treats Unknown as absent and emits a create instruction, which the
// chain no-ops if the account already exists.
type Existence int

const (
	ExistenceConfirmed Existence = iota
	ExistenceAbsent
	ExistenceUnknown
)

// Checkpoint is a recent blockhash plus the height after which the network
// will refuse transactions that reference it.
type Checkpoint struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// SignatureStatus is the subset of getSignatureStatuses the confirmation loop
// cares about. Err carries the network's own error payload when the
// transaction landed but failed.
type SignatureStatus struct {
	Confirmed bool
	Err       interface{}
}

type Client interface {
	// AccountExistence reports whether the account exists on chain. Never
	// returns an error; lookup failures degrade to ExistenceUnknown.
	AccountExistence(ctx context.Context, account solana.PublicKey) Existence

	// MintDecimals reads the decimals field of an SPL mint account.
	MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error)

	// LatestCheckpoint fetches a blockhash at the strongest commitment level.
	LatestCheckpoint(ctx context.Context) (Checkpoint, error)

	// BroadcastRaw submits serialized transaction bytes with preflight
	// enabled. Transient send failures are retried by the RPC node itself,
	// not by this client.
	BroadcastRaw(ctx context.Context, raw []byte) (solana.Signature, error)

	// SignatureStatus polls one signature. A nil status with nil error means
	// the network does not know the signature yet.
	SignatureStatus(ctx context.Context, sig solana.Signature) (*SignatureStatus, error)

	// BlockHeight returns the current block height, used to detect
	// checkpoint expiry during confirmation.
	BlockHeight(ctx context.Context) (uint64, error)
}
