package presale

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// signerSlot returns the index of key within the transaction's required
// signer set, or -1. Signatures align with the first NumRequiredSignatures
// account keys, so this is also the index into tx.Signatures.
func signerSlot(msg *solana.Message, key solana.PublicKey) int {
	n := int(msg.Header.NumRequiredSignatures)
	if n > len(msg.AccountKeys) {
		n = len(msg.AccountKeys)
	}
	for i := 0; i < n; i++ {
		if msg.AccountKeys[i].Equals(key) {
			return i
		}
	}
	return -1
}

// applySignature signs the transaction message with one key and writes the
// signature into that key's slot, leaving every other slot untouched. This is
// the partial-sign step: the client's slot stays zero until they co-sign.
func applySignature(tx *solana.Transaction, signer solana.PrivateKey) error {
	slot := signerSlot(&tx.Message, signer.PublicKey())
	if slot < 0 {
		return errors.Errorf("%s is not a required signer of this transaction", signer.PublicKey())
	}

	msgBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "marshal transaction message")
	}
	sig, err := signer.Sign(msgBytes)
	if err != nil {
		return errors.Wrap(err, "sign transaction message")
	}

	if n := int(tx.Message.Header.NumRequiredSignatures); len(tx.Signatures) < n {
		sigs := make([]solana.Signature, n)
		copy(sigs, tx.Signatures)
		tx.Signatures = sigs
	}
	tx.Signatures[slot] = sig
	return nil
}
