// Package ledger is the byte-cost accountant: pure functions that turn
// storage-footprint readings taken around a mutation into a payment amount.
// The mutation engine snapshots the footprint before a commit, re-reads it
// after, and prices the difference here.
package ledger
