// Package pebblestore wraps a Pebble database with the durability policy and
// helper surface used by the entity store: point reads, atomic batches, and
// bounded prefix scans. All higher-level keyspace layout lives in the store
// package; this wrapper stays byte-oriented.
package pebblestore
