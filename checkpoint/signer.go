package checkpoint

import (
	"crypto/rand"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/veraison/go-cose"
)

// Signer produces a COSE Sign1 signature over an mmr State. The signature
// commits to the root, but the published message does not carry it. Verifiers
// must recompute the root from the mmr at State.MMRSize.
type Signer struct {
	issuer    string
	cborCodec dtcbor.CBORCodec
}

func NewSigner(issuer string, cborCodec dtcbor.CBORCodec) Signer {
	return Signer{
		issuer:    issuer,
		cborCodec: cborCodec,
	}
}

// Sign1 signs the provided state and returns the encoded message. The
// signer's issuer replaces state.Issuer.
func (s Signer) Sign1(coseSigner cose.Signer, keyIdentifier string, state State, external []byte) ([]byte, error) {
	state.Issuer = s.issuer
	payload, err := s.cborCodec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
			},
		},
		Payload: payload,
	}
	err = msg.Sign(rand.Reader, external, coseSigner)
	if err != nil {
		return nil, err
	}

	// Detach the root so that verifiers are forced to obtain it from the mmr.
	state.Root = nil
	payload, err = s.cborCodec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}
	msg.Payload = payload

	return msg.MarshalCBOR()
}
