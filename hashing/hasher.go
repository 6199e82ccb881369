// Package hashing provides the digest strategies used to build and verify
// mmr's. Every Hasher here satisfies mmr.Hasher.
package hashing

import (
	"errors"
	"fmt"
	"hash"
)

var ErrUnknownHasher = errors.New("unknown hasher")

// Hasher derives leaf and interior node digests from a hash.Hash constructor,
// truncating the output to a fixed width.
//
// A fresh hash.Hash is used for every call, so a Hasher is safe for
// concurrent use.
type Hasher struct {
	name    string
	newHash func() hash.Hash
	size    int
}

// New returns a Hasher producing size byte digests from newHash. It panics if
// newHash produces digests narrower than size.
func New(name string, newHash func() hash.Hash, size int) *Hasher {
	if width := newHash().Size(); size <= 0 || width < size {
		panic(fmt.Sprintf("hashing: %s digest is %d bytes, can not produce %d", name, width, size))
	}
	return &Hasher{name: name, newHash: newHash, size: size}
}

func (h *Hasher) Name() string { return h.name }

func (h *Hasher) Size() int { return h.size }

// Merge returns H(left || right)
func (h *Hasher) Merge(left, right []byte) []byte {
	hasher := h.newHash()
	hasher.Write(left)
	hasher.Write(right)
	return h.sum(hasher)
}

// HashLeaf returns H(payload)
func (h *Hasher) HashLeaf(payload []byte) []byte {
	hasher := h.newHash()
	hasher.Write(payload)
	return h.sum(hasher)
}

func (h *Hasher) sum(hasher hash.Hash) []byte {
	sum := hasher.Sum(nil)
	if len(sum) < h.size {
		// New checks the width, a hash.Hash whose Size lies is a programming error
		panic(fmt.Sprintf("hashing: %s produced %d bytes, expected %d", h.name, len(sum), h.size))
	}
	return sum[:h.size]
}
