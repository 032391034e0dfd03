package svc

import (
	"presale-relay/internal/chain"
	"presale-relay/internal/config"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Wallet is the presale identity resolved from config: the SPL mint being
// sold, the treasury wallet that receives payments, and the server keypair
// that co-signs every transaction.
type Wallet struct {
	Mint      solana.PublicKey
	Recipient solana.PublicKey
	Signer    solana.PrivateKey
}

type ServiceContext struct {
	Config config.Config
	Chain  chain.Client

	wallet    *Wallet
	walletErr error
}

func NewServiceContext(c config.Config) *ServiceContext {
	sc := &ServiceContext{
		Config: c,
		Chain:  chain.New(c.Presale.RpcEndpoint),
	}
	sc.wallet, sc.walletErr = loadWallet(c.Presale)
	return sc
}

// NewTestServiceContext builds a context around a fake chain client and an
// explicit wallet. Only tests use it.
func NewTestServiceContext(c config.Config, cli chain.Client, w *Wallet, walletErr error) *ServiceContext {
	return &ServiceContext{Config: c, Chain: cli, wallet: w, walletErr: walletErr}
}

// PresaleWallet returns the resolved wallet, or the configuration error that
// every transaction route must surface until the deployment is fixed.
func (sc *ServiceContext) PresaleWallet() (*Wallet, error) {
	if sc.walletErr != nil {
		return nil, sc.walletErr
	}
	return sc.wallet, nil
}

func loadWallet(c config.PresaleConf) (*Wallet, error) {
	if c.MintAddress == "" {
		return nil, errors.New("mint address is not configured")
	}
	if c.RecipientAddress == "" {
		return nil, errors.New("recipient address is not configured")
	}
	if c.SignerKey == "" {
		return nil, errors.New("signer key is not configured")
	}

	mint, err := chain.ParseAddress(c.MintAddress)
	if err != nil {
		return nil, errors.Wrap(err, "mint address")
	}
	recipient, err := chain.ParseAddress(c.RecipientAddress)
	if err != nil {
		return nil, errors.Wrap(err, "recipient address")
	}
	signer, err := chain.ParseSecretKeyJSON(c.SignerKey)
	if err != nil {
		return nil, errors.Wrap(err, "signer key")
	}

	return &Wallet{Mint: mint, Recipient: recipient, Signer: signer}, nil
}
