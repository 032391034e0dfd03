package presale

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"presale-relay/internal/chain"
	"presale-relay/internal/types"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// buildSigned produces a relay-built transaction, optionally completed with
// the sender's signature, plus the submit request that goes with it.
func buildSigned(t *testing.T, env *testEnv, clientSigns bool) *types.SubmitTransactionRequest {
	t.Helper()

	l := NewCreateTransaction(context.Background(), env.svcCtx)
	resp, err := l.CreateTransaction(&types.CreateTransactionRequest{
		SenderPublicKey: env.sender.PublicKey().String(),
	})
	if err != nil {
		t.Fatal(err)
	}

	b64 := resp.Transaction
	if clientSigns {
		tx := mustDecodeTx(t, b64)
		if err := applySignature(tx, env.sender.PrivateKey); err != nil {
			t.Fatal(err)
		}
		raw, err := tx.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		b64 = base64.StdEncoding.EncodeToString(raw)
	}

	return &types.SubmitTransactionRequest{
		Transaction:          b64,
		Blockhash:            resp.Blockhash,
		LastValidBlockHeight: resp.LastValidBlockHeight,
	}
}

func TestSubmitTransactionSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.chain.broadcastSig = solana.Signature{1, 2, 3}
	env.chain.status = &chain.SignatureStatus{Confirmed: true}

	req := buildSigned(t, env, true)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	resp, err := l.SubmitTransaction(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != "successful" {
		t.Fatalf("status %q, expected successful", resp.Status)
	}
	if resp.Signature != env.chain.broadcastSig.String() {
		t.Fatalf("signature %q, expected broadcast signature", resp.Signature)
	}
	if env.chain.broadcasts != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", env.chain.broadcasts)
	}
}

func TestSubmitTransactionValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)
	complete := buildSigned(t, env, true)

	cases := []struct {
		name string
		req  *types.SubmitTransactionRequest
		want error
	}{
		{"missing transaction", &types.SubmitTransactionRequest{Blockhash: complete.Blockhash, LastValidBlockHeight: 1}, ErrMissingTransaction},
		{"missing blockhash", &types.SubmitTransactionRequest{Transaction: complete.Transaction, LastValidBlockHeight: 1}, ErrMissingBlockhash},
		{"missing block height", &types.SubmitTransactionRequest{Transaction: complete.Transaction, Blockhash: complete.Blockhash}, ErrMissingBlockHeight},
		{"garbage transaction", &types.SubmitTransactionRequest{Transaction: "!!!", Blockhash: complete.Blockhash, LastValidBlockHeight: 1}, ErrMalformedTransaction},
	}

	for _, tc := range cases {
		_, err := l.verifyAndSubmit(tc.req)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if env.chain.broadcasts != 0 {
		t.Fatalf("validation failures must not broadcast, got %d", env.chain.broadcasts)
	}
}

func TestSubmitTransactionRejectsMissingClientSignature(t *testing.T) {
	env := newTestEnv(t)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	// Server-signed only, exactly what the builder hands out.
	req := buildSigned(t, env, false)
	_, err := l.verifyAndSubmit(req)
	if !errors.Is(err, ErrMissingClientSignature) {
		t.Fatalf("expected missing client signature, got %v", err)
	}
	if env.chain.broadcasts != 0 {
		t.Fatal("unsigned transaction must not be broadcast")
	}
}

func TestSubmitTransactionRejectsMissingServerSignature(t *testing.T) {
	env := newTestEnv(t)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	// Strip the server signature and let only the client sign.
	req := buildSigned(t, env, true)
	tx := mustDecodeTx(t, req.Transaction)
	slot := signerSlot(&tx.Message, env.wallet.Signer.PublicKey())
	tx.Signatures[slot] = solana.Signature{}
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	req.Transaction = base64.StdEncoding.EncodeToString(raw)

	_, err = l.verifyAndSubmit(req)
	if !errors.Is(err, ErrMissingServerSignature) {
		t.Fatalf("expected missing server signature, got %v", err)
	}
}

func TestSubmitTransactionRejectsNoSignatures(t *testing.T) {
	env := newTestEnv(t)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	req := buildSigned(t, env, true)
	tx := mustDecodeTx(t, req.Transaction)
	tx.Signatures = nil
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	req.Transaction = base64.StdEncoding.EncodeToString(raw)

	_, err = l.verifyAndSubmit(req)
	if !errors.Is(err, ErrNoSignatures) {
		t.Fatalf("expected no-signatures error, got %v", err)
	}
}

func TestSubmitTransactionRejectsForgedSignature(t *testing.T) {
	env := newTestEnv(t)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	req := buildSigned(t, env, true)
	tx := mustDecodeTx(t, req.Transaction)
	clientSlot := signerSlot(&tx.Message, env.sender.PublicKey())
	tx.Signatures[clientSlot][0] ^= 0xff
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	req.Transaction = base64.StdEncoding.EncodeToString(raw)

	_, err = l.verifyAndSubmit(req)
	if !errors.Is(err, ErrInvalidSignatures) {
		t.Fatalf("expected invalid-signatures error, got %v", err)
	}
}

func TestSubmitTransactionOnChainRejection(t *testing.T) {
	env := newTestEnv(t)
	env.chain.broadcastSig = solana.Signature{9}
	env.chain.status = &chain.SignatureStatus{
		Confirmed: true,
		Err:       map[string]interface{}{"InstructionError": []interface{}{4, "InsufficientFunds"}},
	}

	req := buildSigned(t, env, true)
	l := NewSubmitTransaction(context.Background(), env.svcCtx)

	_, err := l.SubmitTransaction(req)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "Transaction verification failed") {
		t.Fatalf("expected verification-failed prefix, got %v", err)
	}
	if !strings.Contains(err.Error(), "rejected on chain") {
		t.Fatalf("expected on-chain rejection reason, got %v", err)
	}
}
