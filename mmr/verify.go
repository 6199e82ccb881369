package mmr

import (
	"bytes"
	"fmt"
)

// VerifyInclusion returns true if payload, hashed as a leaf, is proven by
// proof to be at leaf index i in the mmr whose root is root.
//
// A proof that is well formed but does not reproduce root is not an error,
// the result is simply false. See VerifyInclusionHash.
func VerifyInclusion(hasher Hasher, root []byte, proof Proof, i uint64, payload []byte) (bool, error) {
	return VerifyInclusionHash(hasher, root, proof, i, hasher.HashLeaf(payload))
}

// VerifyInclusionHash returns true if the leafHash combined with proof
// reproduces root.
//
// The path is derived entirely from i and proof.MMRSize. The proof elements
// are consumed in the order InclusionProof produces them:
//
//	[local-peak-proof-i, bagged-peaks-right-of-i, peaks-left-of-i-reversed]
//
// Returns ErrMalformedProof if the mmr size is invalid, if i is not a leaf in
// it, if the proof has the wrong number of elements or if any element has the
// wrong width.
func VerifyInclusionHash(hasher Hasher, root []byte, proof Proof, i uint64, leafHash []byte) (bool, error) {

	peaks, err := checkTarget(proof.MMRSize, i)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}

	witnesses, iLocalPeak := InclusionProofPath(proof.MMRSize, i)
	k, _, _ := PeakIndex(proof.MMRSize, iLocalPeak)

	expectLen := proofLen(peaks, proof.MMRSize, i)
	if len(proof.Path) != expectLen {
		return false, fmt.Errorf(
			"%w: expected %d elements for index %d in mmr size %d, got %d",
			ErrMalformedProof, expectLen, i, proof.MMRSize, len(proof.Path))
	}
	for j, p := range proof.Path {
		if len(p) != hasher.Size() {
			return false, fmt.Errorf(
				"%w: element %d is %d bytes, expected %d", ErrMalformedProof, j, len(p), hasher.Size())
		}
	}

	localRoot := IncludedRoot(hasher, i, leafHash, proof.Path[:len(witnesses)])
	rest := proof.Path[len(witnesses):]

	// The bagged right hand peaks are always the accumulated value when the
	// local peak is folded in, see BagPeaksRHS.
	acc := localRoot
	if k < len(peaks)-1 {
		acc = hasher.Merge(rest[0], acc)
		rest = rest[1:]
	}
	for _, peak := range rest {
		acc = hasher.Merge(acc, peak)
	}

	return bytes.Equal(acc, root), nil
}

// IncludedRoot calculates the local peak for the provided proof path and node
// value. Note that both interior and leaf nodes are handled identically.
//
// Arguments:
//   - i is the index the nodeHash is to be shown at
//   - nodeHash the value whose inclusion is to be shown
//   - path is the list of sibling values committing i to its local peak, as
//     returned for the witnesses of InclusionProofPath.
func IncludedRoot(hasher Hasher, i uint64, nodeHash []byte, path [][]byte) []byte {

	root := nodeHash

	for _, sibling := range path {
		if IsRightChild(i) {
			root = hasher.Merge(sibling, root)
		} else {
			root = hasher.Merge(root, sibling)
		}
		i = Parent(i)
	}

	return root
}
