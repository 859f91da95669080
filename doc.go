// Package msgsort sorts large float64 buffers in place with a fixed pool
// of worker goroutines that exchange work descriptions through a single
// bounded, blocking message queue.
//
// Msgsort provides the following subpackages:
//
// msgsort/queue provides the bounded FIFO and the WORK, FINISH, and
// SHUTDOWN messages exchanged over it.
//
// msgsort/sort provides the sequential kernels: insertion sort for small
// spans, the median-of-three partition step, and parallel checks for
// sortedness and element checksums.
//
// msgsort/qsort provides the worker pool and the coordinator that drives a
// sort to completion and shuts the pool down.
//
// msgsort/parallel provides fork/join helpers used to fill and check
// buffers in parallel batches.
//
// This package itself holds the run configuration shared by the command
// line driver in cmd/msgsort.
package msgsort
