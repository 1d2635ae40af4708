package bench

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for benchmark configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Binary      string
	Runs        string
	Warmup      string
	Timeout     string
	Modes       string
	JSON        string
	SmallFiles  string
	MediumFiles string
	LargeFiles  string
}

// Config holds CLI flag values for benchmark configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [NewRunner] to build a [Runner].
type Config struct {
	Flags       Flags
	Binaries    []string
	Modes       []string
	Runs        int
	Warmup      int
	Timeout     time.Duration
	JSON        bool
	SmallFiles  int
	MediumFiles int
	LargeFiles  int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Binary:      "binary",
		Runs:        "runs",
		Warmup:      "warmup",
		Timeout:     "timeout",
		Modes:       "modes",
		JSON:        "json",
		SmallFiles:  "small-files",
		MediumFiles: "medium-files",
		LargeFiles:  "large-files",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds benchmark flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	tiers := DefaultTiers()

	flags.StringArrayVarP(&c.Binaries, c.Flags.Binary, "b", []string{"rsync"},
		"binary to benchmark as name=path or path (repeatable)")
	flags.IntVar(&c.Runs, c.Flags.Runs, 5,
		"measured runs per combination")
	flags.IntVar(&c.Warmup, c.Flags.Warmup, 1,
		"warmup runs excluded from timing")
	flags.DurationVar(&c.Timeout, c.Flags.Timeout, 90*time.Second,
		"per-command timeout")
	flags.StringSliceVar(&c.Modes, c.Flags.Modes, nil,
		"copy modes to benchmark (default all): delta,whole_file,checksum,compressed")
	flags.BoolVar(&c.JSON, c.Flags.JSON, false,
		"emit results as JSON instead of a table")
	flags.IntVar(&c.SmallFiles, c.Flags.SmallFiles, tiers.SmallFiles,
		"number of 1KB corpus files")
	flags.IntVar(&c.MediumFiles, c.Flags.MediumFiles, tiers.MediumFiles,
		"number of 100KB corpus files")
	flags.IntVar(&c.LargeFiles, c.Flags.LargeFiles, tiers.LargeFiles,
		"number of 1MB corpus files")
}

// RegisterCompletions registers shell completions for benchmark flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	var names []string
	for _, m := range CopyModes() {
		names = append(names, m.Name)
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Modes,
		cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Modes, err)
	}

	return nil
}

// Tiers returns the corpus shape selected by the configuration.
func (c *Config) Tiers() Tiers {
	tiers := DefaultTiers()
	tiers.SmallFiles = c.SmallFiles
	tiers.MediumFiles = c.MediumFiles
	tiers.LargeFiles = c.LargeFiles

	return tiers
}
