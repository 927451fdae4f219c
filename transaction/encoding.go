package transaction

import (
	"math/big"

	"golang.org/x/xerrors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the ProtoTransactionCoreInfo message.
const (
	fieldVersion      protowire.Number = 1
	fieldNonce        protowire.Number = 2
	fieldToAddr       protowire.Number = 3
	fieldSenderPubKey protowire.Number = 4
	fieldAmount       protowire.Number = 5
	fieldGasPrice     protowire.Number = 6
	fieldGasLimit     protowire.Number = 7
	fieldCode         protowire.Number = 8
	fieldData         protowire.Number = 9

	// ByteArray has a single data field.
	fieldByteArrayData protowire.Number = 1
)

// amountSize is the size of the big-endian encoding of amounts.
const amountSize = 16

// Encode returns the canonical encoding of the transaction, which is the
// message that is signed. It is the protobuf encoding of the core information
// of the transaction.
func Encode(p Params) ([]byte, error) {
	amount, err := encodeAmount(p.Amount)
	if err != nil {
		return nil, xerrors.Errorf("invalid amount: %v", err)
	}

	gasPrice, err := encodeAmount(p.GasPrice)
	if err != nil {
		return nil, xerrors.Errorf("invalid gas price: %v", err)
	}

	var buf []byte

	if p.Version != 0 {
		buf = protowire.AppendTag(buf, fieldVersion, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(p.Version))
	}

	buf = protowire.AppendTag(buf, fieldNonce, protowire.VarintType)
	buf = protowire.AppendVarint(buf, p.Nonce)

	buf = protowire.AppendTag(buf, fieldToAddr, protowire.BytesType)
	buf = protowire.AppendBytes(buf, p.ToAddr[:])

	buf = appendByteArray(buf, fieldSenderPubKey, p.PubKey)
	buf = appendByteArray(buf, fieldAmount, amount)
	buf = appendByteArray(buf, fieldGasPrice, gasPrice)

	if p.GasLimit != 0 {
		buf = protowire.AppendTag(buf, fieldGasLimit, protowire.VarintType)
		buf = protowire.AppendVarint(buf, p.GasLimit)
	}

	if p.Code != "" {
		buf = protowire.AppendTag(buf, fieldCode, protowire.BytesType)
		buf = protowire.AppendString(buf, p.Code)
	}

	if p.Data != "" {
		buf = protowire.AppendTag(buf, fieldData, protowire.BytesType)
		buf = protowire.AppendString(buf, p.Data)
	}

	return buf, nil
}

func appendByteArray(buf []byte, num protowire.Number, data []byte) []byte {
	var inner []byte
	if len(data) > 0 {
		inner = protowire.AppendTag(inner, fieldByteArrayData, protowire.BytesType)
		inner = protowire.AppendBytes(inner, data)
	}

	buf = protowire.AppendTag(buf, num, protowire.BytesType)

	return protowire.AppendBytes(buf, inner)
}

func encodeAmount(n *big.Int) ([]byte, error) {
	out := make([]byte, amountSize)

	if n == nil {
		return out, nil
	}

	if n.Sign() < 0 {
		return nil, xerrors.New("negative value")
	}

	if n.BitLen() > amountSize*8 {
		return nil, xerrors.New("value overflows 128 bits")
	}

	return n.FillBytes(out), nil
}
