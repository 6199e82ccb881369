package mmr

import (
	"bytes"
	"fmt"
)

// GetRoot returns the root for the mmr of the given size. The root is the
// 'bagging' of all peaks, see BagPeaksRHS.
func GetRoot(mmrSize uint64, store NodeGetter, hasher Hasher) ([]byte, error) {
	peakHashes, err := PeakHashes(store, mmrSize)
	if err != nil {
		return nil, err
	}
	return BagPeaksRHS(hasher, peakHashes), nil
}

// PeakHashes returns the peak values for the mmr of the given size, highest
// peak first.
func PeakHashes(store NodeGetter, mmrSize uint64) ([][]byte, error) {
	if mmrSize == 0 {
		return nil, ErrEmptyStructure
	}
	peaks := Peaks(mmrSize)
	if peaks == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, mmrSize)
	}
	return getNodes(store, peaks)
}

// BagPeaksRHS folds the peak values into a single root, starting with the
// right most (lowest) peak and folding in each peak to its left.
//
// The peaks must be listed highest first, as returned by Peaks. So for
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
// The root is
//
//	Merge(Merge(Merge(V(25), V(24)), V(21)), V(14))
//
// Note that the accumulated value from the right is always the first argument
// to Merge. Returns nil if there are no peaks.
func BagPeaksRHS(hasher Hasher, peakHashes [][]byte) []byte {
	if len(peakHashes) == 0 {
		return nil
	}
	root := peakHashes[len(peakHashes)-1]
	for j := len(peakHashes) - 2; j >= 0; j-- {
		root = hasher.Merge(root, peakHashes[j])
	}
	return root
}

// getNodes copies the values at indices out of the store. Callers own the
// result and may modify it.
func getNodes(store NodeGetter, indices []uint64) ([][]byte, error) {
	var values [][]byte
	for _, i := range indices {
		value, err := store.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, bytes.Clone(value))
	}
	return values, nil
}
