// Package profiler manages runtime pprof profiling for CLI runs, exposing
// profile output paths as CLI flags.
package profiler

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"
)

// Profiler controls the lifecycle of a profiling session around a benchmark
// or matrix run.
//
// Create instances with [New], call [Profiler.Start] before the measured
// work and [Profiler.Stop] after it.
type Profiler struct {
	cpuFile *os.File

	// Output paths (empty = disabled).
	CPUProfile  string
	HeapProfile string

	// MemProfileRate is the memory profile sampling rate in bytes per
	// sample.
	MemProfileRate int
}

// New creates a new [Profiler] with all profiles disabled.
// Use [Profiler.RegisterFlags] to add CLI flags, or set profile paths
// directly.
func New() Profiler {
	return Profiler{}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Profiler) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, "cpu-profile", "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, "heap-profile", "", "write heap profile to file")
	flags.IntVar(&c.MemProfileRate, "mem-profile-rate", 524288, "memory profile rate (bytes per sample)")
}

// Start configures the memory profiling rate and starts CPU profiling if
// enabled. Call [Profiler.Stop] when the measured work is complete.
func (c *Profiler) Start() error {
	runtime.MemProfileRate = c.MemProfileRate

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		c.cpuFile = f

		err = pprof.StartCPUProfile(f)
		if err != nil {
			must(c.cpuFile.Close())

			c.cpuFile = nil

			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}

	return nil
}

// Stop stops CPU profiling and writes the heap snapshot if enabled.
func (c *Profiler) Stop() error {
	if c.cpuFile != nil {
		pprof.StopCPUProfile()

		err := c.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		c.cpuFile = nil
	}

	if c.HeapProfile == "" {
		return nil
	}

	f, err := os.Create(c.HeapProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create heap profile: %w", err)
	}

	runtime.GC()

	err = pprof.Lookup("heap").WriteTo(f, 0)
	if err != nil {
		must(f.Close())

		return fmt.Errorf("write heap profile: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
