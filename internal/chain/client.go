package chain

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	token_program "github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// broadcastMaxRetries bounds the RPC node's own resends of the raw
// transaction. The confirmation retry loop is layered on top of this, not
// instead of it.
const broadcastMaxRetries = uint(3)

type rpcChain struct {
	cli *rpc.Client
}

func New(endpoint string) Client {
	return &rpcChain{cli: rpc.New(endpoint)}
}

func (c *rpcChain) AccountExistence(ctx context.Context, account solana.PublicKey) Existence {
	out, err := c.cli.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return ExistenceAbsent
		}
		return ExistenceUnknown
	}
	if out == nil || out.Value == nil {
		return ExistenceAbsent
	}
	return ExistenceConfirmed
}

func (c *rpcChain) MintDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error) {
	out, err := c.cli.GetAccountInfo(ctx, mint)
	if err != nil {
		return 0, errors.Wrap(err, "fetch mint account")
	}
	if out == nil || out.Value == nil {
		return 0, errors.Errorf("mint account %s not found", mint)
	}

	var m token_program.Mint
	if err := m.UnmarshalWithDecoder(bin.NewBinDecoder(out.Value.Data.GetBinary())); err != nil {
		return 0, errors.Wrap(err, "decode mint account")
	}
	return m.Decimals, nil
}

func (c *rpcChain) LatestCheckpoint(ctx context.Context) (Checkpoint, error) {
	out, err := c.cli.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return Checkpoint{}, errors.Wrap(err, "fetch latest blockhash")
	}
	return Checkpoint{
		Blockhash:            out.Value.Blockhash,
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
	}, nil
}

func (c *rpcChain) BroadcastRaw(ctx context.Context, raw []byte) (solana.Signature, error) {
	maxRetries := broadcastMaxRetries
	sig, err := c.cli.SendRawTransactionWithOpts(ctx, raw, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
		MaxRetries:          &maxRetries,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "send transaction")
	}
	return sig, nil
}

func (c *rpcChain) SignatureStatus(ctx context.Context, sig solana.Signature) (*SignatureStatus, error) {
	out, err := c.cli.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, errors.Wrap(err, "get signature status")
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return nil, nil
	}
	v := out.Value[0]
	confirmed := v.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
		v.ConfirmationStatus == rpc.ConfirmationStatusFinalized
	return &SignatureStatus{Confirmed: confirmed, Err: v.Err}, nil
}

func (c *rpcChain) BlockHeight(ctx context.Context) (uint64, error) {
	height, err := c.cli.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, errors.Wrap(err, "get block height")
	}
	return height, nil
}
