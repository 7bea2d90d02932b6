// Package serverrun owns the server lifecycle: it opens the runtime, wires
// the HTTP surface, and handles signal-driven shutdown.
package serverrun
