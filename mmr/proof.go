package mmr

import (
	"fmt"
	"slices"
)

// Proof is an inclusion proof for a single leaf against the root of the mmr
// of size MMRSize. It only verifies against a root computed for exactly that
// size.
type Proof struct {
	MMRSize uint64
	Path    [][]byte
}

// InclusionProof provides a proof of inclusion for the leaf at index i
// against the root of the mmr of size mmrSize.
//
// The proof layout is:
//
//	[local-peak-proof-i, bagged-peaks-right-of-i, peaks-left-of-i-reversed]
//
// So for leaf 15, given
//
//	3              14
//	             /    \
//	            /      \
//	           /        \
//	          /          \
//	2        6            13           21
//	       /   \        /    \
//	1     2     5      9     12     17     20     24
//	     / \   / \    / \   /  \   /  \
//	0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25
//
// We get
//
//	[V(16), V(20), Merge(V(25), V(24)), V(14)]
//
// The bagged right peaks element is omitted if there are no peaks to the
// right of the local peak, and similarly the left peaks.
func InclusionProof(store NodeGetter, hasher Hasher, mmrSize uint64, i uint64) (Proof, error) {

	peaks, err := checkTarget(mmrSize, i)
	if err != nil {
		return Proof{}, err
	}

	witnesses, iLocalPeak := InclusionProofPath(mmrSize, i)
	path, err := getNodes(store, witnesses)
	if err != nil {
		return Proof{}, err
	}

	k, _, _ := PeakIndex(mmrSize, iLocalPeak)

	if k < len(peaks)-1 {
		rhs, err := getNodes(store, peaks[k+1:])
		if err != nil {
			return Proof{}, err
		}
		path = append(path, BagPeaksRHS(hasher, rhs))
	}

	lhs, err := getNodes(store, peaks[:k])
	if err != nil {
		return Proof{}, err
	}
	slices.Reverse(lhs)
	path = append(path, lhs...)

	return Proof{MMRSize: mmrSize, Path: path}, nil
}

// InclusionProofPath returns the mmr indices of the witness nodes proving i
// against its local peak, and the index of that peak.
//
// For the following index tree, and i=15 with mmrSize = 26 we would obtain
// the path
//
//	[16, 20]
//
// and the local peak 21.
//
//	3              14
//	             /    \
//	            /      \
//	           /        \
//	          /          \
//	2        6            13           21
//	       /   \        /    \
//	1     2     5      9     12     17     20     24
//	     / \   / \    / \   /  \   /  \
//	0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25
//
// This method allows tooling to individually audit the proof path node values
// for a given index. The caller must ensure i < mmrSize and that mmrSize is
// valid.
func InclusionProofPath(mmrSize uint64, i uint64) ([]uint64, uint64) {

	var path []uint64

	// i may be an interior node, Sibling and Parent work from its height
	for {
		// A peak only ever looks like a left child, and its 'sibling' is
		// beyond the end of the mmr.
		iSibling := Sibling(i)
		if iSibling >= mmrSize {
			return path, i
		}
		path = append(path, iSibling)
		i = Parent(i)
	}
}

// ProofLen returns the number of proof elements InclusionProof produces for
// leaf i in an mmr of size mmrSize.
func ProofLen(mmrSize uint64, i uint64) (int, error) {
	peaks, err := checkTarget(mmrSize, i)
	if err != nil {
		return 0, err
	}
	return proofLen(peaks, mmrSize, i), nil
}

func proofLen(peaks []uint64, mmrSize uint64, i uint64) int {
	path, iLocalPeak := InclusionProofPath(mmrSize, i)
	k, _, _ := PeakIndex(mmrSize, iLocalPeak)
	n := len(path) + k
	if k < len(peaks)-1 {
		n += 1
	}
	return n
}

// checkTarget returns the peaks for mmrSize if i is a leaf in it.
func checkTarget(mmrSize uint64, i uint64) ([]uint64, error) {
	if mmrSize == 0 {
		return nil, fmt.Errorf("%w: %w: index %d, mmr is empty", ErrInvalidTarget, ErrUnknownPosition, i)
	}
	peaks := Peaks(mmrSize)
	if peaks == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, mmrSize)
	}
	if i >= mmrSize {
		return nil, fmt.Errorf(
			"%w: %w: index %d, mmr size %d", ErrInvalidTarget, ErrUnknownPosition, i, mmrSize)
	}
	if !IsLeaf(i) {
		return nil, fmt.Errorf("%w: index %d has height %d", ErrInvalidTarget, i, IndexHeight(i))
	}
	return peaks, nil
}
