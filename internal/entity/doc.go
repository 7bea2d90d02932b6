// Package entity defines the stored record types: Event, EventList and the
// per-list EventListEntry membership records, together with their closed
// enums and the partial-field shapes accepted by create/update operations.
package entity
