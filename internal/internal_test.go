package internal

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestComputeNofBatches(t *testing.T) {
	for _, tc := range []struct{ low, high, n, want int }{
		{0, 0, 4, 1},
		{0, 3, 8, 3},
		{10, 110, 4, 4},
		{0, 1 << 20, 0, 2 * runtime.GOMAXPROCS(0)},
	} {
		if got := ComputeNofBatches(tc.low, tc.high, tc.n); got != tc.want {
			t.Errorf("ComputeNofBatches(%v, %v, %v) = %v, want %v", tc.low, tc.high, tc.n, got, tc.want)
		}
	}
}

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil, 0) != nil {
		t.Errorf("nil panic was wrapped")
	}
	s, ok := WrapPanic("boom", 2).(string)
	if !ok || !strings.HasPrefix(s, "boom\n") || !strings.Contains(s, "raised in worker 2") {
		t.Errorf("unexpected wrapped string panic: %v", s)
	}
	err, ok := WrapPanic(errors.New("bad"), -1).(error)
	if !ok || strings.Contains(err.Error(), "worker") {
		t.Errorf("unexpected wrapped error panic: %v", err)
	}
	var rerr runtime.Error
	func() {
		defer func() { rerr, _ = WrapPanic(recover(), 0).(runtime.Error) }()
		var a []int
		_ = a[1]
	}()
	if rerr == nil {
		t.Errorf("runtime error lost its type")
	}
}
