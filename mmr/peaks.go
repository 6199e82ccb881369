package mmr

import (
	"math"
	"math/bits"
)

// Peaks returns the mmr indices of the mountain peaks for an mmr of the given
// size. The highest peak has the lowest index and is listed first, the
// smaller 'down range' peaks can only appear to its right.
//
// Returns nil for size 0 and for sizes that no sequence of leaf additions can
// produce (where siblings exist but their parent does not).
//
// So given the example below, which has an mmrSize of 11, the peaks are [6, 9, 10]
//
//	2        6
//	       /   \
//	1     2     5      9
//	     / \   / \    / \
//	0   0   1 3   4  7   8 10
func Peaks(mmrSize uint64) []uint64 {
	if mmrSize == 0 {
		return nil
	}

	var peaks []uint64

	// Start with the largest perfect tree that could fit, then take every
	// perfect tree that still fits, largest first.
	remaining := mmrSize
	offset := uint64(0)
	peakSize := uint64(math.MaxUint64) >> bits.LeadingZeros64(mmrSize)
	for peakSize > 0 {
		if remaining >= peakSize {
			peaks = append(peaks, offset+peakSize-1)
			offset += peakSize
			remaining -= peakSize
		}
		peakSize >>= 1
	}
	if remaining != 0 {
		return nil
	}
	return peaks
}

// PeaksBitmap returns a bit mask where a 1 corresponds to a peak and the
// position of the bit is the height of that peak. The resulting value is also
// the count of leaves. This is due to the binary nature of the tree.
//
// For example, with an mmr with size 19, there are 11 leaves
//
//	         14
//	      /       \
//	    6          13
//	  /   \       /   \
//	 2     5     9     12     17
//	/ \   /  \  / \   /  \   /  \
//	0  1 3   4 7   8 10  11 15  16 18
//
// PeaksBitmap(19) returns 0b1011: peaks at heights 0, 1 and 3.
//
// If the provided mmr size is invalid, the returned map will be for the largest
// valid mmr size < the provided invalid size.
func PeaksBitmap(mmrSize uint64) uint64 {
	if mmrSize == 0 {
		return 0
	}
	pos := mmrSize
	peakSize := uint64(math.MaxUint64) >> bits.LeadingZeros64(mmrSize)
	peakMap := uint64(0)
	for peakSize > 0 {
		peakMap <<= 1
		if pos >= peakSize {
			pos -= peakSize
			peakMap |= 1
		}
		peakSize >>= 1
	}
	return peakMap
}

// IsValidSize reports whether mmrSize is a size an mmr passes through once all
// back fill nodes for the last leaf have been added. Zero is valid, it is the
// empty mmr.
func IsValidSize(mmrSize uint64) bool {
	if mmrSize == 0 {
		return true
	}
	return Peaks(mmrSize) != nil
}

// PeakIndex returns the position in the Peaks list of the peak committing i,
// and that peak's mmr index. Returns false if i is not in the mmr.
func PeakIndex(mmrSize uint64, i uint64) (int, uint64, bool) {
	for k, peak := range Peaks(mmrSize) {
		if i <= peak {
			return k, peak, true
		}
	}
	return 0, 0, false
}
