package mmr

import (
	"bytes"
	"fmt"
)

// MMR is an append only merkle mountain range over an owned NodeStore.
//
// An MMR has exactly one owner. It does no locking, interleaved calls to Push
// from multiple goroutines must be serialized by the caller.
type MMR struct {
	hasher Hasher
	store  NodeStore
}

type Option func(*MMR)

// WithStore supplies the node store. The store may already hold a complete
// mmr. The default is an empty MemStore.
func WithStore(store NodeStore) Option {
	return func(m *MMR) {
		m.store = store
	}
}

// New creates an MMR which hashes with hasher.
func New(hasher Hasher, opts ...Option) (*MMR, error) {
	m := &MMR{hasher: hasher}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemStore()
	}
	if !IsValidSize(m.store.Size()) {
		return nil, fmt.Errorf("%w: store holds %d nodes", ErrInvalidSize, m.store.Size())
	}
	return m, nil
}

func (m *MMR) Hasher() Hasher { return m.hasher }

// Size returns the count of nodes, leaves and interior, in the mmr.
func (m *MMR) Size() uint64 { return m.store.Size() }

func (m *MMR) LeafCount() uint64 { return LeafCount(m.store.Size()) }

// Push adds the leaf digest leafHash and back fills the interior nodes it
// completes. It returns the mmr index of the leaf.
func (m *MMR) Push(leafHash []byte) (uint64, error) {
	if len(leafHash) != m.hasher.Size() {
		return 0, fmt.Errorf("%w: leaf is %d bytes, expected %d", ErrDigestWidth, len(leafHash), m.hasher.Size())
	}
	i := m.store.Size()
	if _, err := AddHashedLeaf(m.store, m.hasher, leafHash); err != nil {
		return 0, err
	}
	return i, nil
}

// AddLeaf hashes payload as a leaf and pushes it.
func (m *MMR) AddLeaf(payload []byte) (uint64, error) {
	return m.Push(m.hasher.HashLeaf(payload))
}

// Get returns the value of the node at mmr index i.
func (m *MMR) Get(i uint64) ([]byte, error) {
	if i >= m.store.Size() {
		return nil, fmt.Errorf("%w: index %d, mmr size %d", ErrUnknownPosition, i, m.store.Size())
	}
	value, err := m.store.Get(i)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(value), nil
}

// Root returns the bagged root for the current size.
func (m *MMR) Root() ([]byte, error) {
	return GetRoot(m.store.Size(), m.store, m.hasher)
}

// RootAt returns the root the mmr had when it was mmrSize. Nodes are never
// changed, so every earlier root can be recovered.
func (m *MMR) RootAt(mmrSize uint64) ([]byte, error) {
	if mmrSize > m.store.Size() {
		return nil, fmt.Errorf("%w: %d is beyond the current size %d", ErrInvalidSize, mmrSize, m.store.Size())
	}
	return GetRoot(mmrSize, m.store, m.hasher)
}

// PeakHashes returns the current peak values, highest peak first.
func (m *MMR) PeakHashes() ([][]byte, error) {
	return PeakHashes(m.store, m.store.Size())
}

// InclusionProof proves the leaf at mmr index i against the current root.
func (m *MMR) InclusionProof(i uint64) (Proof, error) {
	return InclusionProof(m.store, m.hasher, m.store.Size(), i)
}

// InclusionProofAt proves the leaf at mmr index i against the root the mmr
// had when it was mmrSize.
func (m *MMR) InclusionProofAt(mmrSize uint64, i uint64) (Proof, error) {
	if mmrSize > m.store.Size() {
		return Proof{}, fmt.Errorf("%w: %d is beyond the current size %d", ErrInvalidSize, mmrSize, m.store.Size())
	}
	return InclusionProof(m.store, m.hasher, mmrSize, i)
}

// Leaves returns copies of the leaf values in leaf order.
func (m *MMR) Leaves() ([][]byte, error) {
	leaves := make([][]byte, 0, m.LeafCount())
	for iLeaf := uint64(0); iLeaf < m.LeafCount(); iLeaf++ {
		value, err := m.store.Get(MMRIndex(iLeaf))
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, bytes.Clone(value))
	}
	return leaves, nil
}
