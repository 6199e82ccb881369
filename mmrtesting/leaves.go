// Package mmrtesting provides deterministic leaf payloads and a logging test
// context for the tests of the mmr packages. The mmrproof command builds its
// demonstration mmrs from the same leaves.
package mmrtesting

const ValueBytes = 32

// RotatedLeaf returns the bytes 0..31 rotated left by i and then XOR'ed with
// the low byte of i.
func RotatedLeaf(i uint64) []byte {
	v := make([]byte, ValueBytes)
	for j := range v {
		v[j] = byte((uint64(j)+i)%ValueBytes) ^ byte(i)
	}
	return v
}

// IndexedLeaf returns 32 zero bytes with the first byte set to the low byte
// of i.
func IndexedLeaf(i uint64) []byte {
	v := make([]byte, ValueBytes)
	v[0] = byte(i)
	return v
}

// GenerateLeaves returns n payloads produced by gen, in order.
func GenerateLeaves(n uint64, gen func(i uint64) []byte) [][]byte {
	leaves := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		leaves = append(leaves, gen(i))
	}
	return leaves
}

// FlipBit returns a copy of b with the given bit inverted.
func FlipBit(b []byte, bit int) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	c[bit/8] ^= 1 << (bit % 8)
	return c
}
