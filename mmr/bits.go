package mmr

import "math/bits"

func BitLength64(num uint64) uint64 { return uint64(bits.Len64(num)) }

// AllOnes is true when num, in binary, is a contiguous run of 1's starting at
// the low bit. Zero counts as the empty run.
func AllOnes(num uint64) bool {
	return (1<<bits.OnesCount64(num) - 1) == num
}
