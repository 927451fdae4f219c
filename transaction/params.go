package transaction

import (
	"encoding/hex"
	"math/big"

	"go.dedis.ch/zilliqa/scilla"
)

var (
	// DefaultGasPrice is the gas price of contract calls and deployments when
	// none is given, 0.002 ZIL in Qa.
	DefaultGasPrice = big.NewInt(2_000_000_000)

	// DefaultGasLimit is the gas limit of contract calls and deployments when
	// none is given.
	DefaultGasLimit uint64 = 10_000

	// PaymentGasLimit is the gas limit of a simple payment.
	PaymentGasLimit uint64 = 50
)

// Params are the parameters of a transaction. A zero value means that the
// parameter is not set.
type Params struct {
	Version   uint32
	Nonce     uint64
	ToAddr    scilla.Address
	Amount    *big.Int
	PubKey    []byte
	GasPrice  *big.Int
	GasLimit  uint64
	Code      string
	Data      string
	Signature []byte
	Priority  bool
}

// Request returns the request of the CreateTransaction endpoint.
func (p Params) Request() Request {
	return Request{
		Version:   p.Version,
		Nonce:     p.Nonce,
		ToAddr:    p.ToAddr.Checksum(),
		Amount:    bigString(p.Amount),
		PubKey:    hex.EncodeToString(p.PubKey),
		GasPrice:  bigString(p.GasPrice),
		GasLimit:  uitoa(p.GasLimit),
		Code:      p.Code,
		Data:      p.Data,
		Signature: hex.EncodeToString(p.Signature),
		Priority:  p.Priority,
	}
}

// Builder is a helper to create the parameters of a transaction.
type Builder struct {
	params Params
}

// NewBuilder returns a builder with empty parameters.
func NewBuilder() *Builder {
	return &Builder{}
}

// Version sets the packed version.
func (b *Builder) Version(version uint32) *Builder {
	b.params.Version = version
	return b
}

// ChainID sets the version of the chain.
func (b *Builder) ChainID(chainID uint16) *Builder {
	b.params.Version = Version(chainID)
	return b
}

// Nonce sets the nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.params.Nonce = nonce
	return b
}

// ToAddr sets the recipient.
func (b *Builder) ToAddr(addr scilla.Address) *Builder {
	b.params.ToAddr = addr
	return b
}

// Amount sets the amount in Qa.
func (b *Builder) Amount(qa *big.Int) *Builder {
	b.params.Amount = qa
	return b
}

// GasPrice sets the gas price in Qa.
func (b *Builder) GasPrice(qa *big.Int) *Builder {
	b.params.GasPrice = qa
	return b
}

// GasPriceIfNone sets the gas price if it is not set yet.
func (b *Builder) GasPriceIfNone(qa *big.Int) *Builder {
	if b.params.GasPrice == nil {
		b.params.GasPrice = qa
	}

	return b
}

// GasLimit sets the gas limit.
func (b *Builder) GasLimit(limit uint64) *Builder {
	b.params.GasLimit = limit
	return b
}

// GasLimitIfNone sets the gas limit if it is not set yet.
func (b *Builder) GasLimitIfNone(limit uint64) *Builder {
	if b.params.GasLimit == 0 {
		b.params.GasLimit = limit
	}

	return b
}

// Code sets the code of a contract to deploy.
func (b *Builder) Code(code string) *Builder {
	b.params.Code = code
	return b
}

// Data sets the data of a contract call or the init of a deployment.
func (b *Builder) Data(data string) *Builder {
	b.params.Data = data
	return b
}

// Priority sets the priority flag.
func (b *Builder) Priority(priority bool) *Builder {
	b.params.Priority = priority
	return b
}

// Pay sets the amount and the recipient of a payment, with the gas limit of a
// payment unless one is set.
func (b *Builder) Pay(qa *big.Int, to scilla.Address) *Builder {
	return b.Amount(qa).ToAddr(to).GasLimitIfNone(PaymentGasLimit)
}

// Override replaces the parameters with the ones set in the argument.
func (b *Builder) Override(p Params) *Builder {
	if p.Version != 0 {
		b.params.Version = p.Version
	}

	if p.Nonce != 0 {
		b.params.Nonce = p.Nonce
	}

	if !p.ToAddr.IsZero() {
		b.params.ToAddr = p.ToAddr
	}

	if p.Amount != nil {
		b.params.Amount = p.Amount
	}

	if p.GasPrice != nil {
		b.params.GasPrice = p.GasPrice
	}

	if p.GasLimit != 0 {
		b.params.GasLimit = p.GasLimit
	}

	if p.Code != "" {
		b.params.Code = p.Code
	}

	if p.Data != "" {
		b.params.Data = p.Data
	}

	if p.Priority {
		b.params.Priority = true
	}

	return b
}

// Build returns the parameters.
func (b *Builder) Build() Params {
	return b.params
}

func bigString(n *big.Int) string {
	if n == nil {
		return "0"
	}

	return n.String()
}

func uitoa(n uint64) string {
	return new(big.Int).SetUint64(n).String()
}
