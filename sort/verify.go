package sort

import (
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/msgsort/parallel"
)

const checkGrainSize = 0x1000

/*
FindInversion reports the lowest index i such that a[i] > a[i+1]. The
second return value is false if a is sorted in non-descending order.

Large slices are scanned in parallel batches; the result is the same as
for a sequential scan.
*/
func FindInversion(a []float64) (int, bool) {
	n := len(a)
	if n < 2 {
		return -1, false
	}
	scan := func(low, high int) int {
		for i := low; i < high; i++ {
			if a[i] > a[i+1] {
				return i
			}
		}
		return -1
	}
	if n < checkGrainSize {
		i := scan(0, n-1)
		return i, i >= 0
	}
	i := parallel.IntRangeReduce(0, n-1, 0, scan, func(x, y int) int {
		if x >= 0 {
			return x
		}
		return y
	})
	return i, i >= 0
}

// IsSorted reports whether a is sorted in non-descending order.
func IsSorted(a []float64) bool {
	_, found := FindInversion(a)
	return !found
}

// Checksum returns the sum of all elements of a, computed in parallel
// batches. Comparing checksums taken before and after sorting detects
// lost or duplicated elements, up to floating-point reassociation.
func Checksum(a []float64) float64 {
	if len(a) < checkGrainSize {
		return floats.Sum(a)
	}
	return parallel.Float64RangeReduceSum(0, len(a), 0, func(low, high int) float64 {
		return floats.Sum(a[low:high])
	})
}
