package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	// ConfirmAttempts bounds confirmation polling; the 5th failure is final.
	ConfirmAttempts = uint(5)
	// ConfirmBaseDelay doubles on every retry: 2s, 4s, 8s, 16s.
	ConfirmBaseDelay = 2 * time.Second
)

// RejectionError means the network itself rejected the transaction after
// broadcast (instruction failure, or the checkpoint expired). Retrying cannot
// change the outcome, so the confirmation loop never retries it.
type RejectionError struct {
	Reason interface{}
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("transaction rejected on chain: %v", e.Reason)
}

func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}

// Confirm polls the signature until it confirms, the network rejects it, or
// the attempts run out. lastValidBlockHeight is whatever the caller supplied
// with the submission, not necessarily the build-time value. Extra retry
// options override the defaults; tests use that to drop the real delays.
func Confirm(ctx context.Context, cli Client, sig solana.Signature, lastValidBlockHeight uint64, opts ...retry.Option) error {
	base := []retry.Option{
		retry.Attempts(ConfirmAttempts),
		retry.Delay(ConfirmBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !IsRejection(err)
		}),
	}

	err := retry.Do(func() error {
		return confirmOnce(ctx, cli, sig, lastValidBlockHeight)
	}, append(base, opts...)...)
	if err == nil || IsRejection(err) {
		return err
	}
	return errors.Wrap(err, "confirmation failed")
}

func confirmOnce(ctx context.Context, cli Client, sig solana.Signature, lastValidBlockHeight uint64) error {
	status, err := cli.SignatureStatus(ctx, sig)
	if err != nil {
		return err
	}
	if status != nil {
		if status.Err != nil {
			return &RejectionError{Reason: status.Err}
		}
		if status.Confirmed {
			return nil
		}
	}

	// Not confirmed yet. If the chain has moved past the checkpoint's
	// validity window the transaction can never land.
	if lastValidBlockHeight > 0 {
		if height, herr := cli.BlockHeight(ctx); herr == nil && height > lastValidBlockHeight {
			return &RejectionError{
				Reason: fmt.Sprintf("block height %d exceeded lastValidBlockHeight %d", height, lastValidBlockHeight),
			}
		}
	}
	return errors.Errorf("transaction %s not confirmed yet", sig)
}
