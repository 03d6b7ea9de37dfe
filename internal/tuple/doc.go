// Package tuple provides the shared value, tuple, and sequence types
// for covset.
//
// This package contains foundational types only. All other internal
// packages import tuple; tuple imports nothing internal. This ensures
// the tuple layer has no circular dependencies.
//
// Key design constraints:
//   - Value is a sealed variant (String, Int, Bool) - no floats, no
//     reflection-based equality
//   - Tuples are immutable after construction; equality is element-wise
//     and order-sensitive
//   - Source streams are restartable: every call to Tuples returns an
//     independent pass over the same content in the same order
package tuple
