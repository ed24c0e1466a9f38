// Package bitutil provides the pure bit-twiddling primitives the bitboard
// kernels are built from: bit scanning, population count and 64-bit
// rotation. Every function here is total over its documented domain.
package bitutil

import "math/bits"

// BitScanForward returns the index of the least-significant set bit.
// Undefined (returns 64) for x == 0.
func BitScanForward(x uint64) int {
	if x == 0 {
		return 64
	}
	return bits.TrailingZeros64(x)
}

// BitScanReverse returns the index of the most-significant set bit.
// Undefined (returns 64) for x == 0.
func BitScanReverse(x uint64) int {
	if x == 0 {
		return 64
	}
	return 63 - bits.LeadingZeros64(x)
}

// PopCount returns the number of set bits in x.
func PopCount(x uint64) int {
	return bits.OnesCount64(x)
}

// RotateLeft performs a 64-bit left rotation by s bits.
func RotateLeft(x uint64, s int) uint64 {
	return bits.RotateLeft64(x, s)
}

// RotateRight performs a 64-bit right rotation by s bits.
func RotateRight(x uint64, s int) uint64 {
	return bits.RotateLeft64(x, -s)
}

// LSB isolates the least-significant set bit of x (x & -x).
func LSB(x uint64) uint64 {
	return x & (-x)
}

// ClearLSB clears the least-significant set bit of x.
func ClearLSB(x uint64) uint64 {
	return x & (x - 1)
}
