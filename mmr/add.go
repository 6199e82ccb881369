package mmr

// AddHashedLeaf adds a single leaf to the mmr and back fills any interior nodes
// 'above and to the left'
//
// Returns the size of the mmr after addition of the leaf. This is also the
// index of the next leaf.
func AddHashedLeaf(store NodeAppender, hasher Hasher, hashedLeaf []byte) (uint64, error) {

	var err error
	var i uint64
	var left, right []byte

	height := uint64(0) // leaf height is always zero

	if i, err = store.Append(hashedLeaf); err != nil {
		return 0, err
	}

	// If the node after the one we just added would be higher in the tree,
	// the node we just added completes a pair and we can back fill its
	// parent. Each back filled parent is always at the 'next' index, so this
	// repeats until the next index is a leaf again.
	//
	//  0 1 <- we add '1'
	//
	//   2  <- so we get to append '2' as well, because the iNext would be higher
	//  / \
	// 0   1
	//
	// Note that i is at 'next' every time we call IndexHeight
	for IndexHeight(i) > height {

		// i is the parent being back filled, its right child is the node
		// just added
		iLeft, _ := LeftChild(i)
		iRight, _ := RightChild(i)

		if left, err = store.Get(iLeft); err != nil {
			return 0, err
		}
		if right, err = store.Get(iRight); err != nil {
			return 0, err
		}

		if i, err = store.Append(hasher.Merge(left, right)); err != nil {
			return 0, err
		}
		height += 1
	}
	return i, nil
}
