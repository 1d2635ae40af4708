package parity

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidFormat indicates an unrecognized output format selector.
var ErrInvalidFormat = errors.New("invalid output format")

// Output format selectors.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Flags holds CLI flag names for matrix configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Format      string
	PrintSchema string
}

// Config holds CLI flag values for matrix configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags       Flags
	Format      string
	PrintSchema bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Format:      "format",
		PrintSchema: "print-schema",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds matrix flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", FormatYAML,
		"output format, one of: json, yaml")
	flags.BoolVar(&c.PrintSchema, c.Flags.PrintSchema, false,
		"print the JSON Schema of the output and exit")
}

// RegisterCompletions registers shell completions for matrix flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions([]string{FormatJSON, FormatYAML}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// Render writes records to w in the configured format.
func (c *Config) Render(w io.Writer, records []OptionRecord) error {
	switch c.Format {
	case FormatJSON:
		return RenderJSON(w, records)
	case FormatYAML:
		return RenderYAML(w, records)
	}

	return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
}
