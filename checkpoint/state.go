package checkpoint

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
)

// State defines the details included in a signed commitment to an mmr.
type State struct {
	// The size of the mmr defines the path to the root (and the full structure
	// of the tree). Every later state of the same mmr can reproduce this root,
	// because nodes are never changed once added.
	MMRSize uint64 `cbor:"1,keyasint"`
	Root    []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time (milliseconds) read when the root was
	// signed. It allows the same root to be signed again.
	Timestamp int64 `cbor:"3,keyasint"`
	// Hasher names the hashing variant that produced Root. Roots from
	// different hashers are never comparable.
	Hasher string `cbor:"4,keyasint"`
	Issuer string `cbor:"5,keyasint"`
}

// NewCodec returns the deterministic codec used for checkpoint payloads.
func NewCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}
