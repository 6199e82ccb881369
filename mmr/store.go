package mmr

import (
	"bytes"
	"fmt"
)

// NodeGetter reads the node value at an mmr index. The value may be owned by
// the store, everything this package returns to callers is a copy.
type NodeGetter interface {
	Get(i uint64) ([]byte, error)
}

// NodeAppender is a NodeGetter that can also add nodes.
type NodeAppender interface {
	NodeGetter
	// Append adds value at the next index and returns the new size.
	Append(value []byte) (uint64, error)
}

// NodeStore is the append only node storage used by MMR. There is
// deliberately no way to replace a node once it is written.
type NodeStore interface {
	NodeAppender
	Size() uint64
}

// MemStore keeps every node in a slice, indexed by mmr index.
type MemStore struct {
	nodes [][]byte
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Append stores a copy of value.
func (s *MemStore) Append(value []byte) (uint64, error) {
	s.nodes = append(s.nodes, bytes.Clone(value))
	return uint64(len(s.nodes)), nil
}

// Get returns the stored node value. The returned slice is owned by the store
// and must not be modified.
func (s *MemStore) Get(i uint64) ([]byte, error) {
	if i >= uint64(len(s.nodes)) {
		return nil, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return s.nodes[i], nil
}

// Size returns the number of nodes stored.
func (s *MemStore) Size() uint64 {
	return uint64(len(s.nodes))
}
