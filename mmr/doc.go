// Package mmr implements an in memory Merkle Mountain Range with single leaf
// inclusion proofs against a single "bagged" root.
/*

# Overview

A Merkle Mountain Range is a list of perfect binary merkle trees (mountains)
that only ever grows to the right. Adding a leaf may complete one or more
pairs, and the parents of those pairs are 'back filled' immediately after the
leaf. The peaks of the mountains are then folded ("bagged") into a single
root.

Everything about the shape of the range follows from its size, so nothing but
the node values needs to be stored. Navigation around the tree is simple
binary arithmetic on the node indices.

# Numbering

Nodes are numbered by a single zero based mmr index in post order (children
first, left to right), which is also the order in which they are appended:

	3              14
	             /    \
	            /      \
	           /        \
	          /          \
	2        6            13           21
	       /   \        /    \
	1     2     5      9     12     17     20     24
	     / \   / \    / \   /  \   /  \
	0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25

Leaf indices, the ordinal of each leaf among the leaves only, are converted
with MMRIndex and LeafIndex.

The height of any node is recovered from the binary form of its one based
position. Positions of the left most node at each height are all ones (1, 11,
111, ...). For any other position, subtracting the largest all ones value
below its most significant bit 'jumps left' by one perfect tree, landing on a
node at the same height. Repeating until an all ones value is reached and
counting the ones, minus one, gives the height. See IndexHeight.

A node is a leaf exactly when its height is zero. The often quoted test
i&(i+1) == 0 only picks out the leaves that start a new perfect tree
(0, 1, 3, 7, 15, ...), it is not a general leaf test for this numbering.

Given the height g of node i:

  - if the node after i is higher, i is a right child, its parent is i+1 and
    its sibling is i - (2<<g) + 1
  - otherwise i is a left child, its parent is i + (2<<g) and its sibling is
    i + (2<<g) - 1

Not every count of nodes is a valid mmr size. After adding a leaf the back
fill nodes are always added too, so sizes such as 2 or 5 never occur.
Peaks, and everything that depends on it, rejects them.

# Bagging

Peaks are listed highest first. The root folds them from the right, the
accumulated value is always the left argument to Merge:

	root = Merge(Merge(Merge(V(25), V(24)), V(21)), V(14))

InclusionProof and VerifyInclusion apply the same order. A proof is

	[local-peak-proof-i, bagged-peaks-right-of-i, peaks-left-of-i-reversed]

and is only valid against the root for the mmr size it was created for.

# Sources

  - https://github.com/mimblewimble/grin/blob/0ff6763ee64e5a14e70ddd4642b99789a1648a32/core/src/core/pmmr.rs#L606
  - https://github.com/proofchains/python-proofmarshal/blob/master/proofmarshal/mmr.py
  - https://github.com/nervosnetwork/merkle-mountain-range
  - https://github.com/opentimestamps/opentimestamps-server/blob/master/doc/merkle-mountain-range.md
*/
package mmr
