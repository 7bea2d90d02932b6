// Package store implements the two keyed entity containers (events and
// event lists) over a metered Pebble keyspace, plus the per-list membership
// keyspace addressed by composite child keys.
//
// Every mutating method commits one atomic batch and keeps a logical
// footprint counter (bytes of live keys and values) exact, which is what the
// mutation protocol prices. Rollback is expressed by committing the inverse
// write, not by transactions spanning calls.
package store
