// Package clientcmd implements the CLI client commands that talk to a
// running server over its HTTP API.
package clientcmd
