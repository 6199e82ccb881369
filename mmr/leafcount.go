package mmr

import "math/bits"

// LeafCount returns the number of leaves in the largest mmr whose size is <=
// the supplied size.
func LeafCount(size uint64) uint64 {
	return PeaksBitmap(size)
}

// FirstMMRSize returns the first complete mmr size that contains the provided
// mmrIndex. Because of the back fill nodes, the range of valid sizes is not
// continuous.
//
// The outputs of this function for the following mmrIndices are
//
//	[1, 3, 3, 4, 7, 7, 7, 8, 10, 10, 11]
//
//	2        6
//	       /   \
//	1     2     5      9
//	     / \   / \    / \
//	0   0   1 3   4  7   8 10
func FirstMMRSize(mmrIndex uint64) uint64 {

	i := mmrIndex
	h0 := IndexHeight(i)
	h1 := IndexHeight(i + 1)
	for h0 < h1 {
		i++
		h0 = h1
		h1 = IndexHeight(i + 1)
	}

	return i + 1
}

// LeafIndex returns the leaf ordinal of the leaf at mmrIndex. The caller must
// know mmrIndex is a leaf.
func LeafIndex(mmrIndex uint64) uint64 {
	return LeafCount(FirstMMRSize(mmrIndex)) - 1
}

// MMRIndex returns the node index for the leaf e
//
// Args:
//   - leafIndex: the leaf index, where the leaves are numbered consecutively, ignoring interior nodes.
func MMRIndex(leafIndex uint64) uint64 {

	sum := uint64(0)
	for leafIndex > 0 {
		h := bits.Len64(leafIndex)
		sum += (1 << h) - 1
		half := 1 << (h - 1)
		leafIndex -= uint64(half)
	}
	return sum
}

// MMRSizeForLeaves returns the mmr size after leafCount leaves have been
// added.
func MMRSizeForLeaves(leafCount uint64) uint64 {
	// every leaf contributes itself, and the interior nodes number one fewer
	// than the leaves in each perfect tree. There is one perfect tree per set
	// bit.
	return 2*leafCount - uint64(bits.OnesCount64(leafCount))
}
