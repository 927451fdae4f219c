// Package secp256k1 implements the signatures of the Zilliqa chain: Schnorr
// signatures over the secp256k1 elliptic curve with SHA256.
//
// The public key is committed to in the challenge:
//
//	Q = kG
//	r = H(Q || P || m) mod n
//	s = k - r*d mod n
//
// and the signature is the concatenation of r and s.
package secp256k1

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/zilliqa/crypto"
	"go.dedis.ch/zilliqa/scilla"
	"golang.org/x/xerrors"
)

const (
	// Algorithm is the name of the signature scheme.
	Algorithm = "SECP256K1-SCHNORR"

	// PrivateKeySize is the size in bytes of a private key.
	PrivateKeySize = 32

	// SignatureSize is the size in bytes of a signature.
	SignatureSize = 64
)

// PublicKey is a point of the secp256k1 curve.
//
// - implements crypto.PublicKey
type PublicKey struct {
	key *secp.PublicKey
}

// NewPublicKey returns the public key of the compressed or uncompressed
// encoding of the point.
func NewPublicKey(data []byte) (PublicKey, error) {
	key, err := secp.ParsePubKey(data)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("couldn't parse point: %v", err)
	}

	return PublicKey{key: key}, nil
}

// NewPublicKeyFromHex returns the public key of the hexadecimal encoding.
func NewPublicKeyFromHex(str string) (PublicKey, error) {
	data, err := hex.DecodeString(str)
	if err != nil {
		return PublicKey{}, xerrors.Errorf("failed to decode hex: %v", err)
	}

	return NewPublicKey(data)
}

// MarshalBinary implements encoding.BinaryMarshaler. It returns the 33 bytes
// of the compressed point.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return pk.key.SerializeCompressed(), nil
}

// MarshalText implements encoding.TextMarshaler. It returns the hexadecimal
// encoding of the compressed point.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(pk.key.SerializeCompressed())), nil
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk.key.SerializeCompressed())
}

// Address returns the address of the account, which is the last 20 bytes of
// the hash of the compressed point.
func (pk PublicKey) Address() scilla.Address {
	digest := sha256.Sum256(pk.key.SerializeCompressed())

	var addr scilla.Address
	copy(addr[:], digest[12:])

	return addr
}

// Equal implements crypto.PublicKey.
func (pk PublicKey) Equal(other interface{}) bool {
	o, ok := other.(PublicKey)
	if !ok {
		return false
	}

	return pk.key.IsEqual(o.key)
}

// Verify implements crypto.PublicKey. It returns nil if the signature matches
// the message for this public key.
func (pk PublicKey) Verify(msg []byte, sig crypto.Signature) error {
	signature, ok := sig.(Signature)
	if !ok {
		return xerrors.Errorf("invalid signature type '%T'", sig)
	}

	var r, s secp.ModNScalar

	if r.SetByteSlice(signature.data[:32]) || r.IsZero() {
		return xerrors.New("invalid r")
	}

	if s.SetByteSlice(signature.data[32:]) || s.IsZero() {
		return xerrors.New("invalid s")
	}

	var sG, rP, point, q secp.JacobianPoint

	secp.ScalarBaseMultNonConst(&s, &sG)
	pk.key.AsJacobian(&point)
	secp.ScalarMultNonConst(&r, &point, &rP)
	secp.AddNonConst(&sG, &rP, &q)

	if (q.X.IsZero() && q.Y.IsZero()) || q.Z.IsZero() {
		return xerrors.New("commitment is the point at infinity")
	}

	q.ToAffine()

	challenge := hashChallenge(secp.NewPublicKey(&q.X, &q.Y), pk.key, msg)
	if !challenge.Equals(&r) {
		return xerrors.New("signature mismatch")
	}

	return nil
}

// Signature is the concatenation of the two 32-byte scalars r and s.
//
// - implements crypto.Signature
type Signature struct {
	data []byte
}

// NewSignature returns the signature of the data, which must be 64 bytes long.
func NewSignature(data []byte) (Signature, error) {
	if len(data) != SignatureSize {
		return Signature{}, xerrors.Errorf("invalid signature size %d", len(data))
	}

	return Signature{data: append([]byte{}, data...)}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (sig Signature) MarshalBinary() ([]byte, error) {
	return sig.data, nil
}

// String returns the hexadecimal encoding of the signature.
func (sig Signature) String() string {
	return hex.EncodeToString(sig.data)
}

// Equal implements crypto.Signature.
func (sig Signature) Equal(other crypto.Signature) bool {
	o, ok := other.(Signature)
	if !ok {
		return false
	}

	return bytes.Equal(sig.data, o.data)
}

// Signer creates Schnorr signatures with a secp256k1 private key.
//
// - implements crypto.Signer
type Signer struct {
	key  *secp.PrivateKey
	rand io.Reader
}

// NewSigner returns a new random signer.
func NewSigner() Signer {
	stream := random.New(crypto.RandomReader{})

	var d secp.ModNScalar
	d.SetByteSlice(random.Int(secp.S256().Params().N, stream).Bytes())

	return Signer{key: secp.NewPrivateKey(&d), rand: crypto.RandomReader{}}
}

// NewSignerFromBytes returns the signer of the 32-byte private key.
func NewSignerFromBytes(data []byte) (Signer, error) {
	if len(data) != PrivateKeySize {
		return Signer{}, xerrors.Errorf("invalid private key size %d", len(data))
	}

	var d secp.ModNScalar
	if d.SetByteSlice(data) || d.IsZero() {
		return Signer{}, xerrors.New("private key out of range")
	}

	return Signer{key: secp.NewPrivateKey(&d), rand: crypto.RandomReader{}}, nil
}

// NewSignerFromHex returns the signer of the hexadecimal private key.
func NewSignerFromHex(str string) (Signer, error) {
	data, err := hex.DecodeString(str)
	if err != nil {
		return Signer{}, xerrors.Errorf("failed to decode hex: %v", err)
	}

	return NewSignerFromBytes(data)
}

// MarshalBinary implements crypto.Signer. It returns the 32 bytes of the
// private key.
func (s Signer) MarshalBinary() ([]byte, error) {
	return s.key.Serialize(), nil
}

// GetPublicKey implements crypto.Signer.
func (s Signer) GetPublicKey() crypto.PublicKey {
	return PublicKey{key: s.key.PubKey()}
}

// Address returns the address of the account of the signer.
func (s Signer) Address() scilla.Address {
	return PublicKey{key: s.key.PubKey()}.Address()
}

// Sign implements crypto.Signer. It returns the Schnorr signature of the
// message.
func (s Signer) Sign(msg []byte) (crypto.Signature, error) {
	pub := s.key.PubKey()
	stream := random.New(s.rand)
	curveOrder := secp.S256().Params().N

	for {
		var k secp.ModNScalar
		k.SetByteSlice(random.Int(curveOrder, stream).Bytes())

		var q secp.JacobianPoint
		secp.ScalarBaseMultNonConst(&k, &q)
		q.ToAffine()

		r := hashChallenge(secp.NewPublicKey(&q.X, &q.Y), pub, msg)
		if r.IsZero() {
			continue
		}

		var sig secp.ModNScalar
		sig.Mul2(&r, &s.key.Key).Negate().Add(&k)

		k.Zero()

		if sig.IsZero() {
			continue
		}

		rBytes := r.Bytes()
		sBytes := sig.Bytes()

		return Signature{data: append(rBytes[:], sBytes[:]...)}, nil
	}
}

func hashChallenge(q, pub *secp.PublicKey, msg []byte) secp.ModNScalar {
	h := sha256.New()
	h.Write(q.SerializeCompressed())
	h.Write(pub.SerializeCompressed())
	h.Write(msg)

	var r secp.ModNScalar
	r.SetByteSlice(h.Sum(nil))

	return r
}
