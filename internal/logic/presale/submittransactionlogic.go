package presale

import (
	"context"
	"encoding/base64"

	"presale-relay/internal/chain"
	"presale-relay/internal/errs"
	"presale-relay/internal/svc"
	"presale-relay/internal/types"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
)

// Validation taxonomy for submitted transactions, in check order.
var (
	ErrMissingTransaction     = errors.New("transaction is required")
	ErrMissingBlockhash       = errors.New("blockhash is required")
	ErrMissingBlockHeight     = errors.New("lastValidBlockHeight is required")
	ErrMalformedTransaction   = errors.New("transaction is malformed")
	ErrNoSignatures           = errors.New("transaction carries no signatures")
	ErrMissingServerSignature = errors.New("transaction is missing the server signature")
	ErrMissingClientSignature = errors.New("transaction is missing the fee payer signature")
	ErrInvalidSignatures      = errors.New("transaction signature verification failed")
)

type SubmitTransaction struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSubmitTransaction(ctx context.Context, svcCtx *svc.ServiceContext) *SubmitTransaction {
	return &SubmitTransaction{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// SubmitTransaction validates the fully-signed transaction, broadcasts it,
// and polls for confirmation. Every failure on this route surfaces as one
// 500 with the verification prefix; the network's ledger is the only record
// of the outcome.
func (l *SubmitTransaction) SubmitTransaction(req *types.SubmitTransactionRequest) (*types.SubmitTransactionResponse, error) {
	resp, err := l.verifyAndSubmit(req)
	if err != nil {
		return nil, errs.Internal("Transaction verification failed: %v", err)
	}
	return resp, nil
}

func (l *SubmitTransaction) verifyAndSubmit(req *types.SubmitTransactionRequest) (*types.SubmitTransactionResponse, error) {
	wallet, err := l.svcCtx.PresaleWallet()
	if err != nil {
		return nil, errors.Wrap(err, "presale configuration error")
	}

	if req.Transaction == "" {
		return nil, ErrMissingTransaction
	}
	if req.Blockhash == "" {
		return nil, ErrMissingBlockhash
	}
	if req.LastValidBlockHeight == 0 {
		return nil, ErrMissingBlockHeight
	}

	tx, err := decodeTransaction(req.Transaction)
	if err != nil {
		return nil, ErrMalformedTransaction
	}
	if tx.Message.RecentBlockhash.IsZero() ||
		len(tx.Message.AccountKeys) == 0 ||
		tx.Message.Header.NumRequiredSignatures == 0 {
		return nil, ErrMalformedTransaction
	}
	feePayer := tx.Message.AccountKeys[0]

	if len(tx.Signatures) == 0 {
		return nil, ErrNoSignatures
	}

	serverSlot := signerSlot(&tx.Message, wallet.Signer.PublicKey())
	if serverSlot < 0 || serverSlot >= len(tx.Signatures) || tx.Signatures[serverSlot].IsZero() {
		return nil, ErrMissingServerSignature
	}
	clientSlot := signerSlot(&tx.Message, feePayer)
	if clientSlot < 0 || clientSlot >= len(tx.Signatures) || tx.Signatures[clientSlot].IsZero() {
		return nil, ErrMissingClientSignature
	}

	msgBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, ErrMalformedTransaction
	}
	if !tx.Signatures[serverSlot].Verify(wallet.Signer.PublicKey(), msgBytes) ||
		!tx.Signatures[clientSlot].Verify(feePayer, msgBytes) {
		return nil, ErrInvalidSignatures
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "serialize transaction")
	}

	sig, err := l.svcCtx.Chain.BroadcastRaw(l.ctx, raw)
	if err != nil {
		return nil, errors.Wrap(err, "broadcast")
	}
	l.Infof("broadcast presale transaction %s (fee payer %s)", sig, feePayer)

	// A broadcast transaction may land even if the HTTP client goes away,
	// so confirmation polling runs detached from the request context.
	if err := chain.Confirm(context.Background(), l.svcCtx.Chain, sig, req.LastValidBlockHeight); err != nil {
		return nil, err
	}
	l.Infof("confirmed presale transaction %s", sig)

	return &types.SubmitTransactionResponse{
		Status:    "successful",
		Signature: sig.String(),
	}, nil
}

func decodeTransaction(b64 string) (*solana.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64")
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}
