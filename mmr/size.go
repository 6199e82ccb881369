package mmr

// HeightIndexSize returns the node count of a perfect tree whose peak is at
// the zero based height index
func HeightIndexSize(heightIndex uint64) uint64 {
	return (2 << heightIndex) - 1
}
