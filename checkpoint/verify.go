package checkpoint

import (
	"crypto"
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-mmrproof/mmr"
)

// DecodeSigned decodes the State from the signed message. The returned state
// does not verify until its root is restored, see VerifySigned.
func DecodeSigned(codec dtcbor.CBORCodec, data []byte) (*Sign1Message, State, error) {
	signed, err := DecodeSign1(data)
	if err != nil {
		return nil, State{}, err
	}

	var unverifiedState State
	err = codec.UnmarshalInto(signed.Payload, &unverifiedState)
	if err != nil {
		return nil, State{}, err
	}
	return signed, unverifiedState, nil
}

// VerifySigned applies the provided state to the signed message and verifies
// the result.
//
// Verification of a checkpoint is a 3 step process:
//  1. Use DecodeSigned to obtain the State from the signed message. This
//     state will not verify as the root was removed after signing.
//  2. Use State.MMRSize to recompute the root from the mmr.
//  3. Set State.Root and call this function to complete the verification.
//
// See VerifyMMR, which does steps 2 and 3.
func VerifySigned(
	codec dtcbor.CBORCodec, provider PublicKeyProvider, signed *Sign1Message, unverifiedState State, external []byte) error {

	var err error
	signed.Payload, err = codec.MarshalCBOR(unverifiedState)
	if err != nil {
		return err
	}
	if err = signed.VerifyWithProvider(provider, external); err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}
	return nil
}

// VerifyMMR verifies that the signed state commits to the root m had when
// it was State.MMRSize.
func VerifyMMR(
	codec dtcbor.CBORCodec, publicKey crypto.PublicKey, signed *Sign1Message, unverifiedState State,
	m *mmr.MMR, external []byte) error {

	root, err := m.RootAt(unverifiedState.MMRSize)
	if err != nil {
		return err
	}
	unverifiedState.Root = root
	return VerifySigned(codec, NewKeyProvider(signed, publicKey), signed, unverifiedState, external)
}
