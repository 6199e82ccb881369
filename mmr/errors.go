package mmr

import "errors"

var (
	ErrNotFound        = errors.New("node not found")
	ErrEmptyStructure  = errors.New("the mmr is empty and has no root")
	ErrUnknownPosition = errors.New("mmr index is not in the mmr")
	ErrInvalidTarget   = errors.New("proof target must be a leaf in the mmr")
	ErrMalformedProof  = errors.New("the proof is not well formed for the mmr size and target")
	ErrInvalidSize     = errors.New("the size is not a valid mmr size")
	ErrDigestWidth     = errors.New("the digest width does not match the hasher")
)
