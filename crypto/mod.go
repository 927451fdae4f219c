// Package crypto defines the cryptographic primitives used to sign the
// transactions sent to the chain.
//
// Documentation Last Review: 12.10.2026
//
package crypto

import (
	"crypto/sha256"
	"encoding"

	"go.dedis.ch/zilliqa/scilla"
	"golang.org/x/xerrors"
)

// PublicKey is a public identity that can be used to verify a signature.
type PublicKey interface {
	encoding.BinaryMarshaler
	encoding.TextMarshaler

	// Verify returns nil if the signature matches the message, otherwise an
	// error.
	Verify(msg []byte, signature Signature) error

	// Equal returns true when the other object is the same public key.
	Equal(other interface{}) bool
}

// Signature is a verifiable element for a unique message.
type Signature interface {
	encoding.BinaryMarshaler

	// Equal returns true when the other signature is the same.
	Equal(other Signature) bool
}

// Signer provides the primitives to sign a message.
type Signer interface {
	encoding.BinaryMarshaler

	// GetPublicKey returns the public key of the signer.
	GetPublicKey() PublicKey

	// Sign returns the signature of the message.
	Sign(msg []byte) (Signature, error)
}

// AddressOf returns the account address of the public key, which is the last
// 20 bytes of the SHA256 hash of its binary form.
func AddressOf(pk PublicKey) (scilla.Address, error) {
	var addr scilla.Address

	data, err := pk.MarshalBinary()
	if err != nil {
		return addr, xerrors.Errorf("failed to marshal public key: %v", err)
	}

	digest := sha256.Sum256(data)
	copy(addr[:], digest[sha256.Size-scilla.AddressLength:])

	return addr, nil
}
