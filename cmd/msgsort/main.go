// Command msgsort fills a buffer with random values, sorts it with the
// message-driven worker pool, and checks the result.
//
// Usage:
//
//	msgsort [--length N] [--workers T] [--capacity C] [--limit L]
//	        [--min X] [--max Y] [--seed S] [--check-spans]
//	        [--config run.yaml] [--log-level info] [--log-format text]
//
// Nothing is printed on success. If the result is not sorted, the first
// adjacent out-of-order pair is reported on stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/msgsort"
	"github.com/exascience/msgsort/qsort"
	"github.com/exascience/msgsort/sort"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	cfg        msgsort.Config
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := flags{cfg: msgsort.DefaultConfig()}
	cmd := &cobra.Command{
		Use:           "msgsort",
		Short:         "Sort random float64 values with a message-driven worker pool",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(stderr, f.logLevel, f.logFormat)
			if err != nil {
				fmt.Fprintln(stderr, "error:", err)
				return err
			}
			cfg, err := f.resolve(cmd)
			if err != nil {
				logger.Error("msgsort: bad configuration", "error", err)
				return err
			}
			if err := run(cfg, stdout, logger); err != nil {
				logger.Error("msgsort: run failed", "error", err)
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.cfg.Length, "length", f.cfg.Length, "number of elements to sort")
	fs.IntVar(&f.cfg.Workers, "workers", f.cfg.Workers, "number of worker goroutines")
	fs.IntVar(&f.cfg.QueueCapacity, "capacity", f.cfg.QueueCapacity, "message queue capacity (0 = automatic)")
	fs.IntVar(&f.cfg.Limit, "limit", f.cfg.Limit, "largest span sorted with insertion sort")
	fs.Float64Var(&f.cfg.Min, "min", f.cfg.Min, "smallest random value (inclusive)")
	fs.Float64Var(&f.cfg.Max, "max", f.cfg.Max, "largest random value (exclusive)")
	fs.Uint64Var(&f.cfg.Seed, "seed", f.cfg.Seed, "random seed (0 = time based)")
	fs.BoolVar(&f.cfg.CheckSpans, "check-spans", f.cfg.CheckSpans, "panic if two workers ever own overlapping spans")
	fs.StringVar(&f.configPath, "config", "", "YAML file with run parameters; explicit flags take precedence")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format (text, json)")
	return cmd
}

// resolve layers defaults, the config file, and explicitly set flags.
func (f *flags) resolve(cmd *cobra.Command) (msgsort.Config, error) {
	cfg := msgsort.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = cfg.LoadFile(f.configPath); err != nil {
			return cfg, err
		}
	}
	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("length", func() { cfg.Length = f.cfg.Length })
	set("workers", func() { cfg.Workers = f.cfg.Workers })
	set("capacity", func() { cfg.QueueCapacity = f.cfg.QueueCapacity })
	set("limit", func() { cfg.Limit = f.cfg.Limit })
	set("min", func() { cfg.Min = f.cfg.Min })
	set("max", func() { cfg.Max = f.cfg.Max })
	set("seed", func() { cfg.Seed = f.cfg.Seed })
	set("check-spans", func() { cfg.CheckSpans = f.cfg.CheckSpans })
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: l}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func run(cfg msgsort.Config, stdout io.Writer, logger *slog.Logger) error {
	logger = logger.With("run_id", uuid.New().String())
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	data, err := allocate(cfg.Length)
	if err != nil {
		return err
	}
	qsort.RandomFill(data, cfg.Min, cfg.Max, cfg.Seed)
	before := sort.Checksum(data)

	opts := cfg.Options()
	opts.Logger = logger
	start := time.Now()
	stats, err := qsort.Sort(data, opts)
	if err != nil {
		return err
	}
	total := stats.Total()
	logger.Info("msgsort: sorted",
		"length", cfg.Length,
		"workers", cfg.Workers,
		"seed", cfg.Seed,
		"elapsed", time.Since(start),
		"partitions", total.Partitions,
		"leaves", total.Leaves,
		"forwarded", stats.Forwarded+total.Forwarded,
		"queue_capacity", stats.QueueCapacity,
		"queue_high_water", stats.QueueHighWater)

	report(stdout, data)
	if after := sort.Checksum(data); !floats.EqualWithinAbsOrRel(before, after, 1e-9, 1e-9) {
		logger.Warn("msgsort: checksum changed", "before", before, "after", after)
	}
	return nil
}

// allocate turns an impossible buffer size into an error instead of a
// crash.
func allocate(n int) (data []float64, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("allocating %d elements: %v", n, p)
		}
	}()
	return make([]float64, n), nil
}

// report prints the first inversion in data, if any, and reports whether
// data is sorted.
func report(w io.Writer, data []float64) bool {
	i, found := sort.FindInversion(data)
	if found {
		fmt.Fprintf(w, "error: a[%d]=%f > a[%d]=%f\n", i, data[i], i+1, data[i+1])
	}
	return !found
}
