package queue

import "fmt"

// A Message is one of Work, Finish, or Shutdown. Receivers dispatch on
// the concrete type with a type switch.
type Message interface {
	fmt.Stringer
	message()
}

type (
	// Work asks a worker to sort the half-open span [Start, End) of the
	// shared buffer.
	Work struct{ Start, End int }

	// Finish reports that the span [Start, End) is fully sorted.
	Finish struct{ Start, End int }

	// Shutdown is the poison pill. Each worker relays it once before
	// exiting.
	Shutdown struct{}
)

func (Work) message()     {}
func (Finish) message()   {}
func (Shutdown) message() {}

// Len returns the number of elements in the span.
func (w Work) Len() int { return w.End - w.Start }

// Len returns the number of elements in the span.
func (f Finish) Len() int { return f.End - f.Start }

func (w Work) String() string   { return fmt.Sprintf("WORK(%d, %d)", w.Start, w.End) }
func (f Finish) String() string { return fmt.Sprintf("FINISH(%d, %d)", f.Start, f.End) }
func (Shutdown) String() string { return "SHUTDOWN" }
