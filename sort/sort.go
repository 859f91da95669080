/*
Package sort provides the sequential building blocks of the
message-driven parallel quicksort: an insertion sort for small spans,
the median-of-three partition step for large ones, and parallel
post-condition checks over the whole buffer.

All functions operate in place on []float64 and never allocate.
*/
package sort

import "fmt"

// InsertionSort sorts a in non-descending order by shifting each element
// leftwards with adjacent swaps while its left neighbor compares greater.
//
// It is O(n²) and intended for spans of at most a few dozen elements.
func InsertionSort(a []float64) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// medianOfThree rearranges a[first], a[middle] and a[last] so that the
// middle position holds their median.
func medianOfThree(a []float64, first, middle, last int) {
	if a[middle] < a[first] {
		a[first], a[middle] = a[middle], a[first]
	}
	if a[last] < a[middle] {
		a[middle], a[last] = a[last], a[middle]
	}
	if a[middle] < a[first] {
		a[first], a[middle] = a[middle], a[first]
	}
}

/*
Partition rearranges a around the median of its first, middle, and last
elements, and returns a split index p with 0 < p < len(a) such that
every element of a[:p] is <= the pivot and every element of a[p:] is >=
the pivot.

The pivot stays in place during the scan. Elements equal to the pivot
stop both cursors, so runs of equal values are split evenly instead of
degenerating into empty or full-length halves.

Partition panics if len(a) < 2.
*/
func Partition(a []float64) int {
	n := len(a)
	if n < 2 {
		panic(fmt.Sprintf("invalid partition size: %v", n))
	}
	middle := n / 2
	medianOfThree(a, 0, middle, n-1)

	// a[0] and a[n-1] are already on the correct side and act as
	// sentinels for the two cursors.
	p := a[middle]
	i, j := 1, n-2
	for {
		for a[i] < p {
			i++
		}
		for p < a[j] {
			j--
		}
		if i >= j {
			return i
		}
		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
}
