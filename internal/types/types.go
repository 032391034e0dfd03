package types

type CreateTransactionRequest struct {
	SenderPublicKey string  `json:"senderPublicKey"`
	PresaleAmount   float64 `json:"presaleAmount,optional,default=5"`
}

type CreateTransactionResponse struct {
	Transaction          string `json:"transaction"`
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// All fields optional at the parse layer; the submit logic validates them one
// by one so each missing field surfaces its own verification error.
type SubmitTransactionRequest struct {
	Transaction          string                 `json:"transaction,optional"`
	Blockhash            string                 `json:"blockhash,optional"`
	LastValidBlockHeight uint64                 `json:"lastValidBlockHeight,optional"`
	UserData             map[string]interface{} `json:"userData,optional"`
}

type SubmitTransactionResponse struct {
	Status    string `json:"status"`
	Signature string `json:"signature"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Env       string `json:"env"`
}

type IndexResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
