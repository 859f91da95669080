// Package parallel provides the fork/join helpers used around the
// message-driven sort: filling and checking large float64 buffers in
// parallel batches.
//
// All functions recover panics raised in the goroutines they spawn and
// rethrow the left-most one in the calling goroutine.
package parallel

import (
	"fmt"
	"sync"

	"github.com/exascience/msgsort/internal"
)

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated, returning the left-most error
// value that is different from nil.
func Do(thunks ...func() error) (err error) {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	half := len(thunks) / 2
	var err0, err1 error
	fork(
		func() { err0 = Do(thunks[:half]...) },
		func() { err1 = Do(thunks[half:]...) },
	)
	if err0 != nil {
		return err0
	}
	return err1
}

// fork runs right in a new goroutine and left in the current one, and
// rethrows a panic recovered from right after both have returned.
func fork(left, right func()) {
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover(), -1)
			wg.Done()
		}()
		right()
	}()
	left()
	wg.Wait()
	if p != nil {
		panic(p)
	}
}

// split halves the batch count n over [low, high) and reports the
// midpoint, or ok == false when the range cannot be split further.
func split(low, high, n int) (mid, half int, ok bool) {
	switch {
	case n == 1:
		return 0, 0, false
	case n > 1:
		batchSize := ((high - low - 1) / n) + 1
		half = n / 2
		mid = low + batchSize*half
		return mid, half, mid < high
	default:
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	}
}

// Range receives a range, a batch count n, and a range function f,
// divides the range into batches, and invokes the range function for
// each of these batches in parallel, covering the half-open interval
// from low to high, including low but excluding high.
//
// If n is 0, a reasonable default is used that takes
// runtime.GOMAXPROCS(0) into account.
//
// Range panics if high < low, or if n < 0.
func Range(
	low, high, n int,
	f func(low, high int) error,
) error {
	var recur func(int, int, int) error
	recur = func(low, high, n int) error {
		mid, half, ok := split(low, high, n)
		if !ok {
			return f(low, high)
		}
		var err0, err1 error
		fork(
			func() { err0 = recur(low, mid, half) },
			func() { err1 = recur(mid, high, n-half) },
		)
		if err0 != nil {
			return err0
		}
		return err1
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// IntRangeReduce receives a range, a batch count n, a range reducer
// reduce, and a pair reducer pair, divides the range into batches, and
// invokes the range reducer for each of these batches in parallel. The
// results of the range reducer invocations are then combined by
// repeated invocations of the pair reducer, always with the result for
// the lower batch as the first argument.
//
// IntRangeReduce panics if high < low, or if n < 0.
func IntRangeReduce(
	low, high, n int,
	reduce func(low, high int) int,
	pair func(x, y int) int,
) int {
	var recur func(int, int, int) int
	recur = func(low, high, n int) int {
		mid, half, ok := split(low, high, n)
		if !ok {
			return reduce(low, high)
		}
		var left, right int
		fork(
			func() { left = recur(low, mid, half) },
			func() { right = recur(mid, high, n-half) },
		)
		return pair(left, right)
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// Float64RangeReduceSum receives a range, a batch count n, and a range
// reducer reduce, invokes reduce for each batch in parallel, and
// returns the sum of all results.
//
// Float64RangeReduceSum panics if high < low, or if n < 0.
func Float64RangeReduceSum(
	low, high, n int,
	reduce func(low, high int) float64,
) float64 {
	var recur func(int, int, int) float64
	recur = func(low, high, n int) float64 {
		mid, half, ok := split(low, high, n)
		if !ok {
			return reduce(low, high)
		}
		var left, right float64
		fork(
			func() { left = recur(low, mid, half) },
			func() { right = recur(mid, high, n-half) },
		)
		return left + right
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}
