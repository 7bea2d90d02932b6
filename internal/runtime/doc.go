// Package runtime wires storage, the metered entity store, the mutation
// engine, settlement, and external collaborators into a single-node
// instance. Services and servers are constructed on top of a Runtime.
package runtime
