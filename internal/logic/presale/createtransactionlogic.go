package presale

import (
	"context"
	"encoding/base64"
	"math"

	"presale-relay/internal/chain"
	"presale-relay/internal/errs"
	"presale-relay/internal/svc"
	"presale-relay/internal/types"

	"github.com/gagliardetto/solana-go"
	associated_token_account "github.com/gagliardetto/solana-go/programs/associated-token-account"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	token_program "github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
)

const defaultPresaleAmount = 5

type CreateTransaction struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCreateTransaction(ctx context.Context, svcCtx *svc.ServiceContext) *CreateTransaction {
	return &CreateTransaction{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CreateTransaction assembles the presale payment transaction for one sender:
// priority fee, a zero-lamport server self-transfer that forces the server
// signature into the required signer set, conditional ATA creation, and the
// token transfer itself. The result is partially signed and must be completed
// by the sender before submission.
func (l *CreateTransaction) CreateTransaction(req *types.CreateTransactionRequest) (*types.CreateTransactionResponse, error) {
	wallet, err := l.svcCtx.PresaleWallet()
	if err != nil {
		return nil, errs.Internal("presale configuration error: %v", err)
	}

	if req.SenderPublicKey == "" {
		return nil, errs.BadRequest("senderPublicKey is required")
	}
	sender, err := chain.ParseAddress(req.SenderPublicKey)
	if err != nil {
		return nil, errs.BadRequest("invalid senderPublicKey: %v", err)
	}

	amount := req.PresaleAmount
	if amount == 0 {
		amount = defaultPresaleAmount
	}
	if amount < 0 {
		return nil, errs.BadRequest("presaleAmount must be positive")
	}

	tx, checkpoint, err := l.build(wallet, sender, amount)
	if err != nil {
		return nil, errs.Internal("failed to build transaction: %v", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, errs.Internal("failed to serialize transaction: %v", err)
	}

	adjustedHeight := checkpoint.LastValidBlockHeight + l.svcCtx.Config.Presale.BlockheightSlack
	l.Infof("built presale transaction for %s: amount=%v lastValidBlockHeight=%d", sender, amount, adjustedHeight)

	return &types.CreateTransactionResponse{
		Transaction:          base64.StdEncoding.EncodeToString(raw),
		Blockhash:            checkpoint.Blockhash.String(),
		LastValidBlockHeight: adjustedHeight,
	}, nil
}

func (l *CreateTransaction) build(wallet *svc.Wallet, sender solana.PublicKey, amount float64) (*solana.Transaction, chain.Checkpoint, error) {
	// ATA derivation is pure math; it works for off-curve recipient owners
	// and for accounts that do not exist yet.
	senderATA, _, err := solana.FindAssociatedTokenAddress(sender, wallet.Mint)
	if err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "derive sender token account")
	}
	recipientATA, _, err := solana.FindAssociatedTokenAddress(wallet.Recipient, wallet.Mint)
	if err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "derive recipient token account")
	}

	// Best-effort: a failed lookup counts as absent and we emit a create
	// instruction the chain no-ops if the account appeared in the meantime.
	senderExists := l.svcCtx.Chain.AccountExistence(l.ctx, senderATA)
	recipientExists := l.svcCtx.Chain.AccountExistence(l.ctx, recipientATA)

	decimals, err := l.svcCtx.Chain.MintDecimals(l.ctx, wallet.Mint)
	if err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "resolve mint decimals")
	}
	baseUnits := uint64(math.Round(amount * math.Pow10(int(decimals))))

	checkpoint, err := l.svcCtx.Chain.LatestCheckpoint(l.ctx)
	if err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "fetch checkpoint")
	}

	serverKey := wallet.Signer.PublicKey()
	instrs := []solana.Instruction{
		computebudget.NewSetComputeUnitPriceInstruction(l.svcCtx.Config.Presale.PriorityFeeMicroLamports).Build(),
		// Zero-lamport self-transfer: moves nothing, but makes the server
		// key a required signer so the sender cannot strip it out.
		system.NewTransferInstruction(0, serverKey, serverKey).Build(),
	}
	if senderExists != chain.ExistenceConfirmed {
		instrs = append(instrs, associated_token_account.NewCreateInstruction(sender, sender, wallet.Mint).Build())
	}
	if recipientExists != chain.ExistenceConfirmed {
		instrs = append(instrs, associated_token_account.NewCreateInstruction(sender, wallet.Recipient, wallet.Mint).Build())
	}
	instrs = append(instrs, token_program.NewTransferInstruction(
		baseUnits,
		senderATA,
		recipientATA,
		sender,
		nil,
	).Build())

	tx, err := solana.NewTransaction(
		instrs,
		checkpoint.Blockhash,
		solana.TransactionPayer(sender),
	)
	if err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "assemble transaction")
	}

	if err := applySignature(tx, wallet.Signer); err != nil {
		return nil, chain.Checkpoint{}, errors.Wrap(err, "apply server signature")
	}
	return tx, checkpoint, nil
}
