package mmr_test

import (
	"bytes"
	"testing"

	"github.com/forestrie/go-mmrproof/hashing"
	"github.com/forestrie/go-mmrproof/mmr"
	"github.com/forestrie/go-mmrproof/mmrtesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMMR(t *testing.T, hasher mmr.Hasher, payloads [][]byte) *mmr.MMR {
	m, err := mmr.New(hasher)
	require.NoError(t, err)
	for _, p := range payloads {
		_, err := m.AddLeaf(p)
		require.NoError(t, err)
	}
	return m
}

func TestMMREmptyRoot(t *testing.T) {
	m, err := mmr.New(hashing.Blake2b())
	require.NoError(t, err)

	_, err = m.Root()
	assert.ErrorIs(t, err, mmr.ErrEmptyStructure)
	assert.Equal(t, uint64(0), m.Size())

	_, err = m.InclusionProof(0)
	assert.ErrorIs(t, err, mmr.ErrInvalidTarget)
}

func TestMMRPushPositions(t *testing.T) {
	m := newMMR(t, hashing.Blake2b(), nil)

	for iLeaf := uint64(0); iLeaf < 40; iLeaf++ {
		i, err := m.AddLeaf(mmrtesting.IndexedLeaf(iLeaf))
		require.NoError(t, err)
		assert.Equal(t, mmr.MMRIndex(iLeaf), i)
		assert.True(t, mmr.IsLeaf(i))
		assert.Equal(t, mmr.MMRSizeForLeaves(iLeaf+1), m.Size())
		assert.Equal(t, iLeaf+1, m.LeafCount())
	}
}

func TestMMRPushDigestWidth(t *testing.T) {
	m := newMMR(t, hashing.Blake2b(), nil)
	_, err := m.Push(make([]byte, 31))
	assert.ErrorIs(t, err, mmr.ErrDigestWidth)
	assert.Equal(t, uint64(0), m.Size())
}

func TestMMRGet(t *testing.T) {
	hasher := hashing.Blake2b()
	m := newMMR(t, hasher, mmrtesting.GenerateLeaves(3, mmrtesting.RotatedLeaf))

	leaf, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, hasher.HashLeaf(mmrtesting.RotatedLeaf(0)), leaf)

	parent, err := m.Get(2)
	require.NoError(t, err)
	right, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, hasher.Merge(leaf, right), parent)

	// the returned value is a copy
	leaf[0] ^= 0xff
	again, err := m.Get(0)
	require.NoError(t, err)
	assert.NotEqual(t, leaf, again)

	_, err = m.Get(m.Size())
	assert.ErrorIs(t, err, mmr.ErrUnknownPosition)
}

// TestMMRResultsAreCopies modifies every slice the mmr hands out and checks
// the stored nodes, and so the roots and proofs, are unaffected.
func TestMMRResultsAreCopies(t *testing.T) {
	hasher := hashing.Blake2b()
	payloads := mmrtesting.GenerateLeaves(5, mmrtesting.IndexedLeaf)
	m := newMMR(t, hasher, payloads)

	// size 8 has peaks [6, 7]
	require.Equal(t, uint64(8), m.Size())
	nodes := make([][]byte, m.Size())
	for i := range nodes {
		v, err := m.Get(uint64(i))
		require.NoError(t, err)
		nodes[i] = v
	}
	root, err := m.Root()
	require.NoError(t, err)
	want := bytes.Clone(root)

	requireUnchanged := func(t *testing.T) {
		t.Helper()
		for i := range nodes {
			v, err := m.Get(uint64(i))
			require.NoError(t, err)
			require.Equal(t, nodes[i], v, "index %d", i)
		}
		got, err := m.Root()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	t.Run("single peak root", func(t *testing.T) {
		// the root of a size 7 mmr is node 6 itself
		root7, err := m.RootAt(7)
		require.NoError(t, err)
		require.Equal(t, nodes[6], root7)
		root7[0] ^= 0xff
		requireUnchanged(t)
	})

	t.Run("root", func(t *testing.T) {
		root, err := m.Root()
		require.NoError(t, err)
		root[0] ^= 0xff
		requireUnchanged(t)
	})

	t.Run("proof path", func(t *testing.T) {
		// leaf 0 at size 3 is proven by node 1 alone
		proof, err := m.InclusionProofAt(3, 0)
		require.NoError(t, err)
		require.Equal(t, [][]byte{nodes[1]}, proof.Path)
		proof.Path[0][0] ^= 0xff
		requireUnchanged(t)

		root3, err := m.RootAt(3)
		require.NoError(t, err)
		proof, err = m.InclusionProofAt(3, 0)
		require.NoError(t, err)
		ok, err := mmr.VerifyInclusion(hasher, root3, proof, 0, payloads[0])
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("proof peaks", func(t *testing.T) {
		// the single right peak of leaf 0 and the single left peak of leaf 7
		// are both taken straight from the store
		proof, err := m.InclusionProof(0)
		require.NoError(t, err)
		require.Equal(t, nodes[7], proof.Path[len(proof.Path)-1])
		proof.Path[len(proof.Path)-1][0] ^= 0xff

		proof, err = m.InclusionProof(7)
		require.NoError(t, err)
		require.Equal(t, [][]byte{nodes[6]}, proof.Path)
		proof.Path[0][0] ^= 0xff
		requireUnchanged(t)
	})

	t.Run("peak hashes", func(t *testing.T) {
		peaks, err := m.PeakHashes()
		require.NoError(t, err)
		for _, p := range peaks {
			p[0] ^= 0xff
		}
		requireUnchanged(t)
	})

	t.Run("leaves", func(t *testing.T) {
		leaves, err := m.Leaves()
		require.NoError(t, err)
		for _, l := range leaves {
			l[0] ^= 0xff
		}
		requireUnchanged(t)
	})
}

func TestMMRDeterminism(t *testing.T) {
	payloads := mmrtesting.GenerateLeaves(37, mmrtesting.RotatedLeaf)
	for _, name := range hashing.Names() {
		t.Run(name, func(t *testing.T) {
			hasher, err := hashing.ByName(name)
			require.NoError(t, err)

			root1, err := newMMR(t, hasher, payloads).Root()
			require.NoError(t, err)
			root2, err := newMMR(t, hasher, payloads).Root()
			require.NoError(t, err)
			assert.Equal(t, root1, root2)
			assert.Len(t, root1, hasher.Size())
		})
	}
}

// TestMMRAppendOnly checks that adding a leaf never changes an existing node
// and that every earlier root remains recoverable.
func TestMMRAppendOnly(t *testing.T) {
	hasher := hashing.Blake2b()
	m := newMMR(t, hasher, nil)

	var roots [][]byte
	var sizes []uint64
	var nodes [][]byte

	for iLeaf := uint64(0); iLeaf < 50; iLeaf++ {
		_, err := m.AddLeaf(mmrtesting.RotatedLeaf(iLeaf))
		require.NoError(t, err)

		for i, want := range nodes {
			got, err := m.Get(uint64(i))
			require.NoError(t, err)
			require.Equal(t, want, got, "node %d changed after leaf %d", i, iLeaf)
		}
		for i := uint64(len(nodes)); i < m.Size(); i++ {
			value, err := m.Get(i)
			require.NoError(t, err)
			nodes = append(nodes, value)
		}

		root, err := m.Root()
		require.NoError(t, err)
		roots = append(roots, root)
		sizes = append(sizes, m.Size())
	}

	for j, size := range sizes {
		root, err := m.RootAt(size)
		require.NoError(t, err)
		assert.Equal(t, roots[j], root, "size %d", size)

		// the same leaves in a fresh mmr give the same root
		fresh := newMMR(t, hasher, mmrtesting.GenerateLeaves(uint64(j+1), mmrtesting.RotatedLeaf))
		freshRoot, err := fresh.Root()
		require.NoError(t, err)
		assert.Equal(t, roots[j], freshRoot)
	}

	_, err := m.RootAt(m.Size() + 1)
	assert.ErrorIs(t, err, mmr.ErrInvalidSize)
	_, err = m.RootAt(5)
	assert.ErrorIs(t, err, mmr.ErrInvalidSize)
}

// TestMMRTenLeaves pushes ten rotated leaves, proves the last one and checks
// that a single flipped bit in the payload fails verification.
func TestMMRTenLeaves(t *testing.T) {
	hasher := hashing.Blake2b()
	payloads := mmrtesting.GenerateLeaves(10, mmrtesting.RotatedLeaf)
	m := newMMR(t, hasher, payloads)

	root, err := m.Root()
	require.NoError(t, err)

	i := mmr.MMRIndex(9)
	proof, err := m.InclusionProof(i)
	require.NoError(t, err)
	assert.Equal(t, m.Size(), proof.MMRSize)

	ok, err := mmr.VerifyInclusion(hasher, root, proof, i, payloads[9])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mmr.VerifyInclusion(hasher, root, proof, i, mmrtesting.FlipBit(payloads[9], 0))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.InclusionProof(m.Size())
	assert.ErrorIs(t, err, mmr.ErrUnknownPosition)
	assert.ErrorIs(t, err, mmr.ErrInvalidTarget)
}

// TestMMRRoundTrip proves every leaf for every size against that size's root,
// for each hasher.
func TestMMRRoundTrip(t *testing.T) {
	for _, name := range hashing.Names() {
		t.Run(name, func(t *testing.T) {
			hasher, err := hashing.ByName(name)
			require.NoError(t, err)
			payloads := mmrtesting.GenerateLeaves(33, mmrtesting.RotatedLeaf)
			m := newMMR(t, hasher, nil)

			for iLeaf, p := range payloads {
				_, err := m.AddLeaf(p)
				require.NoError(t, err)
				root, err := m.Root()
				require.NoError(t, err)

				for jLeaf := 0; jLeaf <= iLeaf; jLeaf++ {
					i := mmr.MMRIndex(uint64(jLeaf))
					proof, err := m.InclusionProof(i)
					require.NoError(t, err)
					ok, err := mmr.VerifyInclusion(hasher, root, proof, i, payloads[jLeaf])
					require.NoError(t, err)
					require.True(t, ok, "leaf %d of %d", jLeaf, iLeaf+1)
				}
			}
		})
	}
}

// TestMMRProofAtEarlierSize checks that proofs pinned to an earlier size only
// verify against the root of that size.
func TestMMRProofAtEarlierSize(t *testing.T) {
	hasher := hashing.SHA256()
	payloads := mmrtesting.GenerateLeaves(20, mmrtesting.RotatedLeaf)
	m := newMMR(t, hasher, payloads)

	earlier := mmr.MMRSizeForLeaves(11)
	oldRoot, err := m.RootAt(earlier)
	require.NoError(t, err)
	newRoot, err := m.Root()
	require.NoError(t, err)

	i := mmr.MMRIndex(3)
	proof, err := m.InclusionProofAt(earlier, i)
	require.NoError(t, err)
	assert.Equal(t, earlier, proof.MMRSize)

	ok, err := mmr.VerifyInclusion(hasher, oldRoot, proof, i, payloads[3])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mmr.VerifyInclusion(hasher, newRoot, proof, i, payloads[3])
	require.NoError(t, err)
	assert.False(t, ok)

	// leaf 15 was not yet added at the earlier size
	_, err = m.InclusionProofAt(earlier, mmr.MMRIndex(15))
	assert.ErrorIs(t, err, mmr.ErrInvalidTarget)

	_, err = m.InclusionProofAt(m.Size()+1, i)
	assert.ErrorIs(t, err, mmr.ErrInvalidSize)
}

// TestMMRIndexedLeaves mirrors the build command: 100 leaves where only
// the first byte is set to the leaf ordinal, proving mmr index 63.
func TestMMRIndexedLeaves(t *testing.T) {
	hasher := hashing.Blake2b()
	m := newMMR(t, hasher, nil)

	target := uint64(63)
	require.True(t, mmr.IsLeaf(target))

	var proved bool
	for iLeaf := uint64(0); iLeaf < 100; iLeaf++ {
		payload := mmrtesting.IndexedLeaf(iLeaf)
		i, err := m.AddLeaf(payload)
		require.NoError(t, err)
		if i != target {
			continue
		}
		root, err := m.Root()
		require.NoError(t, err)
		proof, err := m.InclusionProof(i)
		require.NoError(t, err)
		ok, err := mmr.VerifyInclusion(hasher, root, proof, i, payload)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, uint64(32), mmr.LeafIndex(i))
		proved = true
		break
	}
	assert.True(t, proved)
}

func TestMMRWithStore(t *testing.T) {
	hasher := hashing.Blake2b()
	payloads := mmrtesting.GenerateLeaves(7, mmrtesting.RotatedLeaf)
	m := newMMR(t, hasher, payloads)

	store := mmr.NewMemStore()
	for i := uint64(0); i < m.Size(); i++ {
		value, err := m.Get(i)
		require.NoError(t, err)
		_, err = store.Append(value)
		require.NoError(t, err)
	}
	reopened, err := mmr.New(hasher, mmr.WithStore(store))
	require.NoError(t, err)

	want, err := m.Root()
	require.NoError(t, err)
	got, err := reopened.Root()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	leaves, err := reopened.Leaves()
	require.NoError(t, err)
	require.Len(t, leaves, len(payloads))
	for j, p := range payloads {
		assert.Equal(t, hasher.HashLeaf(p), leaves[j])
	}

	peaks, err := reopened.PeakHashes()
	require.NoError(t, err)
	assert.Len(t, peaks, 3)

	// a store ending with an unpaired sibling is rejected
	_, err = store.Append(hasher.HashLeaf([]byte("x")))
	require.NoError(t, err)
	_, err = store.Append(hasher.HashLeaf([]byte("y")))
	require.NoError(t, err)
	_, err = mmr.New(hasher, mmr.WithStore(store))
	assert.ErrorIs(t, err, mmr.ErrInvalidSize)
}
