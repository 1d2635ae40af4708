package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNoResults indicates every benchmark combination failed or timed
	// out.
	ErrNoResults = errors.New("no benchmark results")
	// ErrInvalidBinary indicates a malformed --binary specification.
	ErrInvalidBinary = errors.New("invalid binary specification")
)

// CopyMode is one flag combination exercised against every binary.
type CopyMode struct {
	Name  string
	Label string
	Flags string
}

// CopyModes returns the benchmarked flag combinations.
func CopyModes() []CopyMode {
	return []CopyMode{
		{Name: "delta", Label: "Delta (default)", Flags: "-av"},
		{Name: "whole_file", Label: "Whole-file (-W)", Flags: "-avW"},
		{Name: "checksum", Label: "Checksum (-c)", Flags: "-avc"},
		{Name: "compressed", Label: "Compressed (-z)", Flags: "-avz"},
	}
}

// Scenario names one transfer situation.
type Scenario string

const (
	// ScenarioInitial copies into an empty destination.
	ScenarioInitial Scenario = "initial"
	// ScenarioNoChange re-syncs an already-synced tree.
	ScenarioNoChange Scenario = "no_change"
	// ScenarioIncremental syncs after a fraction of source files changed.
	ScenarioIncremental Scenario = "incremental"
)

// Scenarios returns all scenarios in execution order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioInitial, ScenarioNoChange, ScenarioIncremental}
}

// incrementalFraction is the share of corpus files rewritten before each
// incremental run.
const incrementalFraction = 0.1

// Stats holds timing statistics over the measured runs of one combination,
// in seconds.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stddev float64 `json:"stddev"`
	Runs   int     `json:"runs"`
}

// Binary is one benchmarked executable.
type Binary struct {
	Name string
	Path string
}

// Result is one row of the benchmark matrix. Timing is nil when the
// combination failed or timed out.
type Result struct {
	Binary   string   `json:"binary"`
	Version  string   `json:"version"`
	Mode     string   `json:"mode"`
	Label    string   `json:"label"`
	Scenario Scenario `json:"scenario"`
	Timing   *Stats   `json:"timing"`
}

// Runner executes the benchmark matrix.
//
// Create instances with [NewRunner].
type Runner struct {
	logger   *slog.Logger
	binaries []Binary
	modes    []CopyMode
	tiers    Tiers
	runs     int
	warmup   int
	timeout  time.Duration
}

// NewRunner builds a [Runner] from cfg. Binary specifications take the form
// name=path, or a bare path whose base name becomes the label.
func NewRunner(cfg *Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	binaries := make([]Binary, 0, len(cfg.Binaries))

	for _, spec := range cfg.Binaries {
		if spec == "" {
			return nil, fmt.Errorf("%w: empty", ErrInvalidBinary)
		}

		name, path, found := strings.Cut(spec, "=")
		if !found {
			path = spec
			name = filepath.Base(spec)
		}

		if name == "" || path == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBinary, spec)
		}

		binaries = append(binaries, Binary{Name: name, Path: path})
	}

	modes, err := selectModes(cfg.Modes)
	if err != nil {
		return nil, err
	}

	return &Runner{
		logger:   logger,
		binaries: binaries,
		modes:    modes,
		tiers:    cfg.Tiers(),
		runs:     cfg.Runs,
		warmup:   cfg.Warmup,
		timeout:  cfg.Timeout,
	}, nil
}

// selectModes resolves mode names to copy modes, or returns all modes for an
// empty selection.
func selectModes(names []string) ([]CopyMode, error) {
	all := CopyModes()
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]CopyMode, len(all))
	for _, m := range all {
		byName[m.Name] = m
	}

	modes := make([]CopyMode, 0, len(names))

	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown copy mode %q", ErrInvalidBinary, name)
		}

		modes = append(modes, m)
	}

	return modes, nil
}

// Run generates the corpus in a temp directory and executes every
// binary x mode x scenario combination. It fails with [ErrNoResults] only
// when no combination produced timing at all.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	base, err := os.MkdirTemp("", "rsync-parity-bench-")
	if err != nil {
		return nil, fmt.Errorf("create bench dir: %w", err)
	}
	defer os.RemoveAll(base)

	src := filepath.Join(base, "src")

	r.logger.Info("generating corpus",
		slog.Int("small", r.tiers.SmallFiles),
		slog.Int("medium", r.tiers.MediumFiles),
		slog.Int("large", r.tiers.LargeFiles),
	)

	err = CreateCorpus(src, r.tiers)
	if err != nil {
		return nil, err
	}

	var (
		results []Result
		timed   int
	)

	for _, bin := range r.binaries {
		version := r.versionString(ctx, bin.Path)

		for _, mode := range r.modes {
			for _, scenario := range Scenarios() {
				stats := r.runCombination(ctx, bin, mode, scenario, src, base)
				if stats != nil {
					timed++
				}

				results = append(results, Result{
					Binary:   bin.Name,
					Version:  version,
					Mode:     mode.Name,
					Label:    mode.Label,
					Scenario: scenario,
					Timing:   stats,
				})
			}
		}
	}

	if timed == 0 {
		return nil, ErrNoResults
	}

	return results, nil
}

// runCombination times one binary/mode/scenario cell. Failures are logged
// and reported as nil timing.
func (r *Runner) runCombination(
	ctx context.Context,
	bin Binary,
	mode CopyMode,
	scenario Scenario,
	src, base string,
) *Stats {
	dst := filepath.Join(base, fmt.Sprintf("dst-%s-%s", bin.Name, mode.Name))

	argv := append([]string{bin.Path}, strings.Fields(mode.Flags)...)
	argv = append(argv, src+string(os.PathSeparator), dst+string(os.PathSeparator))

	reset := r.resetFor(scenario, src, dst)

	// Scenarios build on each other: no_change and incremental need a
	// synced destination first.
	if scenario != ScenarioInitial {
		err := r.runOnce(ctx, argv)
		if err != nil {
			r.logger.Warn("seed sync failed",
				slog.String("binary", bin.Name),
				slog.String("mode", mode.Name),
				slog.String("scenario", string(scenario)),
				slog.Any("error", err),
			)

			return nil
		}
	}

	stats, err := r.runTimed(ctx, argv, reset)
	if err != nil {
		r.logger.Warn("combination skipped",
			slog.String("binary", bin.Name),
			slog.String("mode", mode.Name),
			slog.String("scenario", string(scenario)),
			slog.Any("error", err),
		)

		return nil
	}

	return stats
}

// resetFor returns the per-run preparation step for a scenario.
func (r *Runner) resetFor(scenario Scenario, src, dst string) func() error {
	switch scenario {
	case ScenarioInitial:
		return func() error {
			err := os.RemoveAll(dst)
			if err != nil {
				return fmt.Errorf("clear destination: %w", err)
			}

			return nil
		}

	case ScenarioIncremental:
		return func() error {
			return ModifyFraction(src, incrementalFraction)
		}

	case ScenarioNoChange:
	}

	return nil
}

// runTimed executes argv warmup+runs times, calling reset before each run,
// and returns timing stats over the measured runs.
func (r *Runner) runTimed(ctx context.Context, argv []string, reset func() error) (*Stats, error) {
	for range r.warmup {
		err := r.prepareAndRun(ctx, argv, reset)
		if err != nil {
			return nil, err
		}
	}

	durations := make([]time.Duration, 0, r.runs)

	for range r.runs {
		if reset != nil {
			err := reset()
			if err != nil {
				return nil, err
			}
		}

		start := time.Now()

		err := r.runOnce(ctx, argv)
		if err != nil {
			return nil, err
		}

		durations = append(durations, time.Since(start))
	}

	stats := computeStats(durations)

	return &stats, nil
}

func (r *Runner) prepareAndRun(ctx context.Context, argv []string, reset func() error) error {
	if reset != nil {
		err := reset()
		if err != nil {
			return err
		}
	}

	return r.runOnce(ctx, argv)
}

// runOnce executes argv with the per-command timeout. rsync exit codes 23
// (partial transfer) and 24 (vanished source files) count as success.
func (r *Runner) runOnce(ctx context.Context, argv []string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...) //nolint:gosec // Binary paths come from CLI flags.

	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	if runCtx.Err() != nil {
		return fmt.Errorf("timeout after %s: %s", r.timeout, strings.Join(argv, " "))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == 23 || code == 24 {
			return nil
		}

		return fmt.Errorf("exit %d: %s: %s", code, strings.Join(argv, " "), firstLine(out))
	}

	return fmt.Errorf("run %s: %w", argv[0], err)
}

// versionString reports the first line of --version output, or a
// placeholder when the binary cannot be queried.
func (r *Runner) versionString(ctx context.Context, path string) string {
	verCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(verCtx, path, "--version").Output() //nolint:gosec // Binary paths come from CLI flags.
	if err != nil || len(out) == 0 {
		return "unavailable"
	}

	return firstLine(out)
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	return strings.TrimSpace(line)
}

// computeStats derives timing statistics, in seconds rounded to 0.1 ms, from
// the measured durations.
func computeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}

	secs := make([]float64, len(durations))
	for i, d := range durations {
		secs[i] = d.Seconds()
	}

	sort.Float64s(secs)

	var sum float64
	for _, s := range secs {
		sum += s
	}

	mean := sum / float64(len(secs))

	var variance float64
	for _, s := range secs {
		variance += (s - mean) * (s - mean)
	}

	variance /= float64(len(secs))

	return Stats{
		Mean:   round4(mean),
		Median: round4(secs[len(secs)/2]),
		Min:    round4(secs[0]),
		Max:    round4(secs[len(secs)-1]),
		Stddev: round4(math.Sqrt(variance)),
		Runs:   len(secs),
	}
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// RenderJSON writes results as an indented JSON array.
func RenderJSON(w io.Writer, results []Result) error {
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	return nil
}

// RenderText writes results as an aligned text table.
func RenderText(w io.Writer, results []Result) error {
	_, err := fmt.Fprintf(w, "%-12s %-18s %-12s %10s %10s %6s\n",
		"BINARY", "MODE", "SCENARIO", "MEAN(s)", "MEDIAN(s)", "RUNS")
	if err != nil {
		return fmt.Errorf("render results: %w", err)
	}

	for _, res := range results {
		if res.Timing == nil {
			_, err = fmt.Fprintf(w, "%-12s %-18s %-12s %10s %10s %6s\n",
				res.Binary, res.Label, res.Scenario, "-", "-", "-")
			if err != nil {
				return fmt.Errorf("render results: %w", err)
			}

			continue
		}

		_, err = fmt.Fprintf(w, "%-12s %-18s %-12s %10.4f %10.4f %6d\n",
			res.Binary, res.Label, res.Scenario, res.Timing.Mean, res.Timing.Median, res.Timing.Runs)
		if err != nil {
			return fmt.Errorf("render results: %w", err)
		}
	}

	return nil
}
