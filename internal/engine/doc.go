// Package engine implements the covset enumeration engine.
//
// A Combinator holds an ordered list of selection stages ("factors"),
// each a combination or permutation draw over a candidate pool. The
// stages compose into a single lazy sequence of tuples: each result is
// the concatenation, in stage order, of every stage's per-draw
// contribution.
//
// ARCHITECTURE:
//
// Pull-based lazy evaluation:
// Generation is single-threaded and demand-driven. No stage suspends
// or runs concurrently with another; a consumer bounds work purely by
// how many elements it pulls. Enumeration order is deterministic and
// part of the package's contract.
//
// Stage expansion ("pumping"):
// For every partial tuple produced by stages 1..i, stage i+1's
// candidate pool is walked fresh - any pool entry may be a nested
// source whose output must be freshly iterated per context - and each
// draw is appended. Outer stages vary slowest, matching left-to-right
// declaration order.
//
// Draw bookkeeping:
// Combinations thread a skip count down the recursion: after picking
// the candidate at flattened position p, deeper picks start at p+1, so
// each unordered set is produced exactly once in canonical
// strictly-increasing position order. Permutations thread an immutable
// forbidden-position set instead: a position consumed at a shallower
// level is unavailable deeper, while sibling branches stay
// independent. Both states pass by value down the recursion; no branch
// shares mutable counters with another.
package engine
