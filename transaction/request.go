package transaction

import (
	"go.dedis.ch/zilliqa/scilla"
)

// Request is the body of the CreateTransaction endpoint.
type Request struct {
	Version   uint32 `json:"version"`
	Nonce     uint64 `json:"nonce"`
	ToAddr    string `json:"toAddr"`
	Amount    string `json:"amount"`
	PubKey    string `json:"pubKey"`
	GasPrice  string `json:"gasPrice"`
	GasLimit  string `json:"gasLimit"`
	Code      string `json:"code,omitempty"`
	Data      string `json:"data,omitempty"`
	Signature string `json:"signature"`
	Priority  bool   `json:"priority"`
}

// CreateResponse is the response of the CreateTransaction endpoint.
type CreateResponse struct {
	TranID string `json:"TranID"`
	Info   string `json:"Info"`
	// ContractAddress is only set for deployments.
	ContractAddress scilla.Address `json:"ContractAddress"`
}
