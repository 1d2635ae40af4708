// Command rsync-parity compares upstream rsync against a reimplementation.
//
// The matrix subcommand scans upstream's options.c and a captured --help
// transcript and renders an option parity matrix as YAML or JSON. The bench
// subcommand orchestrates timed transfer benchmarks across binaries. The
// branding subcommand audits packaging metadata from a branding manifest.
//
// # Usage
//
//	rsync-parity matrix [flags] <options.c> <help.txt>
//	rsync-parity bench [flags]
//	rsync-parity branding [flags]
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oferchen/rsync-parity/bench"
	"github.com/oferchen/rsync-parity/branding"
	"github.com/oferchen/rsync-parity/log"
	"github.com/oferchen/rsync-parity/parity"
	"github.com/oferchen/rsync-parity/profiler"
	"github.com/oferchen/rsync-parity/version"
)

func main() {
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "rsync-parity",
		Short: "Option parity, benchmark, and branding tooling for rsync reimplementations",
		Long: `rsync-parity compares an rsync reimplementation against upstream: which
options it advertises, how fast it transfers, and whether its packaging
metadata follows the branding rules.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(newMatrixCmd(), newBenchCmd(), newBrandingCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newMatrixCmd() *cobra.Command {
	cfg := parity.NewConfig()

	cmd := &cobra.Command{
		Use:   "matrix [flags] <options.c> <help.txt>",
		Short: "Render the option parity matrix",
		Long: `matrix scans upstream rsync's options.c for the popt declaration table and
module-scalar defaults, scans a captured --help transcript of the
reimplementation, and renders one row per declared option: identifier,
category, upstream compile-time default, and implemented/missing status.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}

func runMatrix(cmd *cobra.Command, cfg *parity.Config, args []string) error {
	if cfg.PrintSchema {
		out, err := json.MarshalIndent(parity.Schema(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schema: %w", err)
		}

		out = append(out, '\n')

		_, err = cmd.OutOrStdout().Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", parity.ErrWriteOutput, err)
		}

		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("%w: expected <options.c> and <help.txt> arguments", parity.ErrReadInput)
	}

	source, err := os.ReadFile(args[0]) //nolint:gosec // Input paths come from CLI arguments.
	if err != nil {
		return fmt.Errorf("%w: %w", parity.ErrReadInput, err)
	}

	transcript, err := os.ReadFile(args[1]) //nolint:gosec // Input paths come from CLI arguments.
	if err != nil {
		return fmt.Errorf("%w: %w", parity.ErrReadInput, err)
	}

	records, err := parity.BuildMatrix(string(source), string(transcript))
	if err != nil {
		return err
	}

	slog.Debug("matrix built", slog.Int("records", len(records)))

	return cfg.Render(cmd.OutOrStdout(), records)
}

func newBenchCmd() *cobra.Command {
	cfg := bench.NewConfig()
	prof := profiler.New()

	cmd := &cobra.Command{
		Use:   "bench [flags]",
		Short: "Benchmark transfer performance across rsync binaries",
		Long: `bench generates a synthetic three-tier file corpus and times every
binary x copy-mode x scenario combination, excluding warmup runs. Partial
transfer exit codes (23, 24) count as success; failing combinations are
reported without timing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, cfg, &prof)
		},
	}

	cfg.RegisterFlags(cmd.Flags())
	prof.RegisterFlags(cmd.Flags())

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}

func runBench(cmd *cobra.Command, cfg *bench.Config, prof *profiler.Profiler) error {
	runner, err := bench.NewRunner(cfg, slog.Default())
	if err != nil {
		return err
	}

	err = prof.Start()
	if err != nil {
		return err
	}

	results, runErr := runner.Run(cmd.Context())

	err = prof.Stop()
	if err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}

	if cfg.JSON {
		return bench.RenderJSON(cmd.OutOrStdout(), results)
	}

	return bench.RenderText(cmd.OutOrStdout(), results)
}

func newBrandingCmd() *cobra.Command {
	cfg := branding.NewConfig()

	cmd := &cobra.Command{
		Use:   "branding [flags]",
		Short: "Audit packaging branding metadata",
		Long: `branding loads the branding manifest, validates the naming and path rules
packaging artifacts depend on, and renders the audit report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBranding(cmd, cfg)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	return cmd
}

func runBranding(cmd *cobra.Command, cfg *branding.Config) error {
	b, err := branding.Load(cfg.Manifest)
	if err != nil {
		return err
	}

	err = b.Validate()
	if err != nil {
		return err
	}

	slog.Debug("branding validated", slog.String("summary", b.Summary()))

	if cfg.JSON {
		return branding.RenderJSON(cmd.OutOrStdout(), b)
	}

	return branding.RenderText(cmd.OutOrStdout(), b)
}
