// Package cover reduces an enumerated tuple space to a compact subset
// that still witnesses every specified interaction ("pairwise" and
// k-wise covering for combinatorial interaction testing).
//
// A Filter materializes its source completely at construction,
// shuffles it with a fixed deterministic seed, and streams the subset
// whose retained tuples jointly cover every distinct projection each
// relation takes across the full source. The strategy is single-pass
// greedy first-occurrence, not a minimal covering array: expect the
// output to run 1.5-5x the theoretical minimum.
//
// Determinism is a contract. The shuffle generator is pinned (see
// shuffle.go), so the same source and relation list always produce the
// same output sequence, across runs and across releases.
package cover
