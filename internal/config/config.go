package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	Rest    RestConf
	Log     LogConf
	Banner  BannerConf
	Presale PresaleConf
}

type RestConf struct {
	rest.RestConf
}

type LogConf struct {
	logx.LogConf
}

type BannerConf struct {
	Text     string `json:",default=PRESALE"`
	Color    string `json:",default=green"`
	FontName string `json:",default=standard,options=big|larry3d|starwars|standard"`
}

// PresaleConf carries everything the two transaction routes need. The three
// secrets/addresses are optional at load time so the process can still serve
// /health with partial config; the transaction routes refuse to work until
// all of them parse.
type PresaleConf struct {
	MintAddress              string `json:",optional,env=PRESALE_MINT_ADDRESS"`
	RecipientAddress         string `json:",optional,env=PRESALE_RECIPIENT_ADDRESS"`
	SignerKey                string `json:",optional,env=PRESALE_SIGNER_KEY"`
	RpcEndpoint              string `json:",default=https://api.devnet.solana.com,env=SOLANA_RPC_ENDPOINT"`
	PriorityFeeMicroLamports uint64 `json:",default=100000"`
	BlockheightSlack         uint64 `json:",default=150"`
	Env                      string `json:",default=development,env=APP_ENV"`
}
