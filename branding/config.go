package branding

import (
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for the branding audit, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Manifest string
	JSON     string
}

// Config holds CLI flag values for the branding audit.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags    Flags
	Manifest string
	JSON     bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Manifest: "manifest",
		JSON:     "json",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds branding flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Manifest, c.Flags.Manifest, "m", "branding.yaml",
		"path to the branding manifest")
	flags.BoolVar(&c.JSON, c.Flags.JSON, false,
		"emit the report as JSON instead of text")
}
