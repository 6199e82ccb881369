package mmr

// References:
// * https://github.com/proofchains/python-proofmarshal/blob/master/proofmarshal/mmr.py#L18
// * https://github.com/mimblewimble/grin/blob/0ff6763ee64e5a14e70ddd4642b99789a1648a32/core/src/core/pmmr.rs#L606

// JumpLeftPerfect moves pos left by the size of the largest perfect tree
// preceding it. Repeating this until an 'all ones' value is reached lands on
// the left most node at the same height as pos.
//
//	3            15
//	           /    \
//	          /      \
//	         /        \
//	2       7          14
//	      /   \       /   \
//	1    3     6    10     13      18
//	    / \  /  \   / \   /  \    /  \
//	0  1   2 4   5 8   9 11   12 16   17
//
// JumpLeftPerfect(13) is 6, then JumpLeftPerfect(6) is 3, which is all ones.
//
// ** Note ** pos is the *one based* position, not the zero based index.
func JumpLeftPerfect(pos uint64) uint64 {
	mostSignificantBit := uint64(1) << (BitLength64(pos) - 1)
	return pos - (mostSignificantBit - 1)
}

// PosHeight returns the height of the one based position pos.
func PosHeight(pos uint64) uint64 {
	for !AllOnes(pos) {
		pos = JumpLeftPerfect(pos)
	}
	return BitLength64(pos) - 1
}

// IndexHeight returns the height of the node at mmr index i. Leaves have
// height 0. Everything else in this package is built on it. See doc.go for
// why the binary form of the one based position makes this work.
func IndexHeight(i uint64) uint64 {
	// the encoding only works out for one based positions
	return PosHeight(i + 1)
}

// IsLeaf reports whether mmr index i is a leaf.
//
// The bit test i&(i+1) == 0 only holds for the first leaf after each
// completed perfect tree (0, 1, 3, 7, 15, ...). Those indices are always
// leaves, but most leaves (4, 8, 10, ...) fail it, so it cannot be used as
// the predicate for this numbering.
func IsLeaf(i uint64) bool {
	return IndexHeight(i) == 0
}

// IsRightChild reports whether i is the right child of its parent. The parent
// of a right child is always stored immediately after it, so the node after i
// is higher than i.
func IsRightChild(i uint64) bool {
	return IndexHeight(i+1) > IndexHeight(i)
}

// SiblingOffset returns the distance between two siblings at the given height.
func SiblingOffset(height uint64) uint64 {
	// (1 << h) - 1 for a one based height. our height is zero based so we
	// start from 2
	return (2 << height) - 1
}

// ParentOffset returns the distance from a left child at the given height to
// its parent.
func ParentOffset(height uint64) uint64 {
	return 2 << height
}

// Sibling returns the index of the sibling of i. The caller must know that the
// sibling exists in the mmr of interest, a peak has no sibling.
func Sibling(i uint64) uint64 {
	height := IndexHeight(i)
	if IndexHeight(i+1) > height {
		return i - SiblingOffset(height)
	}
	return i + SiblingOffset(height)
}

// Parent returns the index of the parent of i.
func Parent(i uint64) uint64 {
	height := IndexHeight(i)
	if IndexHeight(i+1) > height {
		return i + 1
	}
	return i + ParentOffset(height)
}

// LeftChild returns the index of the left child of the interior node i.
// If i is a leaf it returns false.
//
//	2       6
//	      /   \
//	1    2     5      9
//	    / \  /  \   /  \
//	0  0   1 3   4 7    8
//
// LeftChild(6) is 2, LeftChild(9) is 7
func LeftChild(i uint64) (uint64, bool) {
	height := IndexHeight(i)
	if height == 0 {
		return 0, false
	}
	return i - (1 << height), true
}

// RightChild returns the index of the right child of the interior node i.
// If i is a leaf it returns false.
func RightChild(i uint64) (uint64, bool) {
	if IndexHeight(i) == 0 {
		return 0, false
	}
	return i - 1, true
}
