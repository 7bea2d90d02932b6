// Package httpserver exposes the service entry points over HTTP with JSON
// bodies. Payable routes authenticate callers with bearer tokens and carry
// the attached deposit in the request body.
package httpserver
