package ordering

import (
	"sort"
	"time"

	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/fault"
)

// Insert adds eventID to the sequence at position. Entries at or after the
// target position are pushed back one slot and stamped with the acting
// identity. The target position is treated as a hint: Normalize is what
// guarantees the final numbering, so negative or far-out-of-range positions
// are accepted without special cases.
//
// Returns Conflict when eventID is already a member.
func Insert(entries []entity.EventListEntry, eventID string, position int, actor string, now time.Time) ([]entity.EventListEntry, error) {
	for _, e := range entries {
		if e.EventID == eventID {
			return nil, fault.Conflict("event %s is already in the list", eventID)
		}
	}
	out := make([]entity.EventListEntry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Position >= position {
			e.Position++
			e.LastUpdatedBy = actor
			e.LastUpdatedAt = now
		}
		out = append(out, e)
	}
	out = append(out, entity.EventListEntry{
		EventID:       eventID,
		Position:      position,
		AddedBy:       actor,
		LastUpdatedBy: actor,
		LastUpdatedAt: now,
	})
	return Normalize(out, actor, now), nil
}

// Remove deletes eventID from the sequence and renumbers the remainder.
// Returns NotFound when eventID is not a member.
func Remove(entries []entity.EventListEntry, eventID string, actor string, now time.Time) ([]entity.EventListEntry, error) {
	out := make([]entity.EventListEntry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.EventID == eventID {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return nil, fault.NotFound("event %s is not in the list", eventID)
	}
	return Normalize(out, actor, now), nil
}

// Normalize is the gap-fill pass: it sorts entries ascending by position,
// breaking ties by event id (event ids are unique within a list, so the
// order is total and deterministic), and reassigns positions 0..n-1. Only
// entries whose position actually changes are stamped with the acting
// identity; a normalized sequence passes through unchanged, so the pass is
// idempotent.
func Normalize(entries []entity.EventListEntry, actor string, now time.Time) []entity.EventListEntry {
	out := append([]entity.EventListEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].EventID < out[j].EventID
	})
	for i := range out {
		if out[i].Position != i {
			out[i].Position = i
			out[i].LastUpdatedBy = actor
			out[i].LastUpdatedAt = now
		}
	}
	return out
}
