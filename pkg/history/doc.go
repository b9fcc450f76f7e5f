// Package history records the outcome of validation passes so teams
// can audit how a room design converged: which passes failed, how many
// issues each raised, and how the counts moved as the design changed.
//
// Recording is asynchronous. The engine returns its result to the
// caller immediately; a background worker drains a buffered channel
// into the configured storage backend. A full buffer drops the record
// rather than blocking a validation pass.
//
// Storage backends: an in-memory store for tests and short-lived
// sessions, and a SQLite store for durable local history. The retention
// pruner deletes old records on a cron schedule.
package history
