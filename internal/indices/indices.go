// Package indices normalizes user-supplied row and column indices.
package indices

import "math"

// NoLimit disables clamping in Abs.
const NoLimit = -1

// Abs returns |index|. When limit is not NoLimit the result is clamped to |limit|.
func Abs(index, limit int) int {
	abs := absInt(index)
	if limit != NoLimit && abs > absInt(limit) {
		return absInt(limit)
	}
	return abs
}

// AbsAll returns the absolute value of every index. A nil slice yields an empty one.
func AbsAll(idx []int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = absInt(v)
	}
	return out
}

// absInt maps math.MinInt to math.MaxInt.
func absInt(v int) int {
	if v == math.MinInt {
		return math.MaxInt
	}
	if v < 0 {
		return -v
	}
	return v
}
