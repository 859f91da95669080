package qsort

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/exascience/msgsort/parallel"
)

const fillGrainSize = 0x4000

/*
RandomFill overwrites data with values drawn uniformly from [min, max).

The buffer is filled in parallel batches of a fixed size, each with its
own source derived from seed, so the result depends only on seed and
len(data), not on GOMAXPROCS.

RandomFill panics if max < min.
*/
func RandomFill(data []float64, min, max float64, seed uint64) {
	if max < min {
		panic(fmt.Sprintf("invalid value range: %v:%v", min, max))
	}
	u := distuv.Uniform{Min: min, Max: max}
	batches := (len(data) + fillGrainSize - 1) / fillGrainSize
	if batches == 0 {
		return
	}
	parallel.Range(0, len(data), batches, func(low, high int) error {
		r := rand.New(rand.NewSource(seed + uint64(low)))
		for i := low; i < high; i++ {
			data[i] = u.Quantile(r.Float64())
		}
		return nil
	})
}
