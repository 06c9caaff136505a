package board

import "math/bits"

// LowestSetBit returns a word containing only the least significant set
// bit of x, or 0 if x is 0.
func LowestSetBit(x uint64) uint64 {
	return x & (-x)
}

// HighestSetBit returns a word containing only the most significant set
// bit of x, or 0 if x is 0.
func HighestSetBit(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return uint64(1) << (63 - bits.LeadingZeros64(x))
}

// CountTrailingZeroes returns the index (0-63) of the least significant
// set bit of x, or -1 if x is 0.
func CountTrailingZeroes(x uint64) int {
	if x == 0 {
		return -1
	}
	return bits.TrailingZeros64(x)
}

// PopCount returns the number of set bits in x (0-64).
func PopCount(x uint64) int {
	return bits.OnesCount64(x)
}
