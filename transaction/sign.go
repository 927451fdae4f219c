package transaction

import (
	"go.dedis.ch/zilliqa/crypto"
	"golang.org/x/xerrors"
)

// Sign fills the public key of the signer in the parameters and signs their
// canonical encoding.
func Sign(p Params, signer crypto.Signer) (Params, error) {
	pubkey, err := signer.GetPublicKey().MarshalBinary()
	if err != nil {
		return p, xerrors.Errorf("failed to marshal public key: %v", err)
	}

	p.PubKey = pubkey

	msg, err := Encode(p)
	if err != nil {
		return p, xerrors.Errorf("failed to encode: %v", err)
	}

	sig, err := signer.Sign(msg)
	if err != nil {
		return p, xerrors.Errorf("failed to sign: %v", err)
	}

	p.Signature, err = sig.MarshalBinary()
	if err != nil {
		return p, xerrors.Errorf("failed to marshal signature: %v", err)
	}

	return p, nil
}
