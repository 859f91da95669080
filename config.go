package msgsort

import (
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/exascience/msgsort/qsort"
)

// Config holds the fixed parameters of one sorting run.
type Config struct {
	// Length is the number of elements to sort.
	Length int `json:"length"`

	// Workers is the number of worker goroutines.
	Workers int `json:"workers"`

	// QueueCapacity bounds the message queue; 0 sizes it automatically.
	QueueCapacity int `json:"queueCapacity"`

	// Limit is the largest span sorted with insertion sort.
	Limit int `json:"limit"`

	// Min and Max bound the random values, Min inclusive and Max
	// exclusive.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Seed seeds the random values. 0 picks a seed at run time.
	Seed uint64 `json:"seed"`

	// CheckSpans enables the run-time check that workers never write to
	// overlapping spans.
	CheckSpans bool `json:"checkSpans"`
}

// DefaultConfig returns 1000 elements in [0.01, 2.5) sorted by four
// workers with a sequential threshold of 20.
func DefaultConfig() Config {
	return Config{
		Length:  1000,
		Workers: 4,
		Limit:   20,
		Min:     0.01,
		Max:     2.5,
	}
}

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate reports the first parameter that cannot be used for a run.
func (c Config) Validate() error {
	switch {
	case c.Length < 0:
		return fmt.Errorf("%w: negative length %d", ErrInvalidConfig, c.Length)
	case c.Workers < 1:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.Workers)
	case c.Limit < 1:
		return fmt.Errorf("%w: sequential threshold %d", ErrInvalidConfig, c.Limit)
	case c.QueueCapacity < 0:
		return fmt.Errorf("%w: negative queue capacity %d", ErrInvalidConfig, c.QueueCapacity)
	case c.QueueCapacity > 0 && c.QueueCapacity < qsort.MinCapacity(c.Length):
		return fmt.Errorf("%w: queue capacity %d cannot hold %d in-flight messages",
			ErrInvalidConfig, c.QueueCapacity, qsort.MinCapacity(c.Length))
	case c.Max < c.Min:
		return fmt.Errorf("%w: value range [%v, %v)", ErrInvalidConfig, c.Min, c.Max)
	}
	return nil
}

// Options converts c into options for qsort.Sort. The logger is left
// for the caller to set.
func (c Config) Options() qsort.Options {
	return qsort.Options{
		Workers:       c.Workers,
		QueueCapacity: c.QueueCapacity,
		Limit:         c.Limit,
		CheckSpans:    c.CheckSpans,
	}
}

// LoadFile reads a YAML (or JSON) file and applies it on top of c. Keys
// that are absent from the file keep their value from c.
func (c Config) LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}
