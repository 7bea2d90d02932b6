// Package eventlistsvc implements the event-list entry points: payable list
// CRUD and ordered membership changes that keep positions contiguous, plus
// the membership read paths.
package eventlistsvc
