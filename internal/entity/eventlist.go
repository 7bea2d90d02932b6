package entity

import "time"

// PermissionType enumerates the fine-grained list permissions. The values
// are stored but no operation enforces them yet; owner-equality is the only
// enforced rule.
type PermissionType string

const (
	PermissionAddListEntry    PermissionType = "add_list_entry"
	PermissionRemoveListEntry PermissionType = "remove_list_entry"
	PermissionChangeList      PermissionType = "change_list"
)

// Permission grants an account a set of list permissions.
type Permission struct {
	AccountID   string           `json:"account_id"`
	Permissions []PermissionType `json:"permissions"`
}

// EventList is a stored list record. Its ordered membership lives in a
// separate per-list keyspace, not inline in this record.
type EventList struct {
	ID            string       `json:"id"`
	Owner         string       `json:"owner_account_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	CreatedAt     time.Time    `json:"created_at"`
	LastUpdatedAt time.Time    `json:"last_updated_at"`
	Permissions   []Permission `json:"permissions"`
}

// EventListEntry is one membership record in a list's ordered sequence.
// Positions are contiguous 0..n-1 after every successful mutation.
type EventListEntry struct {
	EventID       string    `json:"event_id"`
	Position      int       `json:"position"`
	AddedBy       string    `json:"added_by"`
	LastUpdatedBy string    `json:"last_updated_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// EventListFields carries caller-supplied list fields; nil means unchanged.
type EventListFields struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Permissions *[]Permission `json:"permissions,omitempty"`
}

// Validate checks the fields that are set. Permission values are accepted
// verbatim: the container is scaffolding, not an enforced surface.
func (f EventListFields) Validate() error { return nil }

// Apply merges set fields into the list. ID, Owner and CreatedAt are never
// touched; the caller stamps LastUpdatedAt.
func (l *EventList) Apply(f EventListFields) {
	if f.Name != nil {
		l.Name = *f.Name
	}
	if f.Description != nil {
		l.Description = *f.Description
	}
	if f.Permissions != nil {
		l.Permissions = *f.Permissions
	}
}

// EventListView is the read shape returned to callers, optionally including
// the resolved membership sequence.
type EventListView struct {
	EventList
	Events []EventListEntry `json:"events,omitempty"`
}
