// Package store provides durable storage for generated plans.
//
// A plan is a materialized tuple set - typically a covering subset
// produced by the filter - saved so a test run can replay the exact
// same matrix later. Uses SQLite with WAL mode for concurrent read
// access; writes are single-connection.
//
// Tuple rows are serialized as tagged JSON arrays so element kinds
// survive the round trip (a string "1" never comes back as the
// integer 1).
package store
