// Package bench orchestrates timed transfer benchmarks across one or more
// rsync binaries.
//
// A [Runner] executes every combination of binary, copy mode (delta,
// whole-file, checksum, compressed), and scenario (initial, no_change,
// incremental) against a synthetic three-tier file corpus, with warmup runs
// excluded from timing and a per-command timeout. rsync's partial-transfer
// exit codes (23, 24) count as success. A combination that fails or times
// out is recorded without timing rather than aborting the whole matrix.
//
// Results render as a text table or JSON via [RenderText] and [RenderJSON].
package bench
