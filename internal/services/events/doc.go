// Package eventsvc implements the event entry points: payable create,
// update and remove running under the mutation engine, plus read paths
// including CEL-filtered scans.
package eventsvc
