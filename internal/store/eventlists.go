package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/NEARFoundation/events-platform/internal/entity"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
)

// GetEventList returns the list record (without membership) and whether it
// exists.
func (s *Store) GetEventList(id string) (entity.EventList, bool, error) {
	raw, err := s.db.Get(listKey(id))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return entity.EventList{}, false, nil
	}
	if err != nil {
		return entity.EventList{}, false, fmt.Errorf("store: get event list %s: %w", id, err)
	}
	var l entity.EventList
	if err := json.Unmarshal(raw, &l); err != nil {
		return entity.EventList{}, false, fmt.Errorf("store: decode event list %s: %w", id, err)
	}
	return l, true, nil
}

// PutEventList writes the list record, creating or replacing it. Membership
// entries are untouched.
func (s *Store) PutEventList(l entity.EventList) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("store: encode event list %s: %w", l.ID, err)
	}
	return s.commit([]op{setOp(listKey(l.ID), raw)})
}

// DeleteEventList removes the list record and cascades over its membership
// keyspace in the same atomic batch.
func (s *Store) DeleteEventList(id string) error {
	ops := []op{delOp(listKey(id))}
	err := s.db.ScanPrefix(entriesPrefix(id), func(k, _ []byte) error {
		ops = append(ops, delOp(append([]byte(nil), k...)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: collect entries of list %s: %w", id, err)
	}
	return s.commit(ops)
}

// HasEventList reports whether a list with the given id exists.
func (s *Store) HasEventList(id string) (bool, error) {
	_, ok, err := s.GetEventList(id)
	return ok, err
}

// AllEventLists returns every stored list record. Order carries no meaning.
func (s *Store) AllEventLists() ([]entity.EventList, error) {
	var out []entity.EventList
	err := s.db.ScanPrefix(listPrefix, func(_, v []byte) error {
		var l entity.EventList
		if err := json.Unmarshal(v, &l); err != nil {
			return fmt.Errorf("store: decode event list: %w", err)
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Entries returns the membership sequence of a list sorted ascending by
// position (ties, which only exist transiently, resolve by event id).
func (s *Store) Entries(listID string) ([]entity.EventListEntry, error) {
	var out []entity.EventListEntry
	err := s.db.ScanPrefix(entriesPrefix(listID), func(_, v []byte) error {
		var e entity.EventListEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("store: decode entry of list %s: %w", listID, err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

// GetEntry returns one membership entry by event id.
func (s *Store) GetEntry(listID, eventID string) (entity.EventListEntry, bool, error) {
	raw, err := s.db.Get(entryKey(listID, eventID))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return entity.EventListEntry{}, false, nil
	}
	if err != nil {
		return entity.EventListEntry{}, false, fmt.Errorf("store: get entry %s/%s: %w", listID, eventID, err)
	}
	var e entity.EventListEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entity.EventListEntry{}, false, fmt.Errorf("store: decode entry %s/%s: %w", listID, eventID, err)
	}
	return e, true, nil
}

// CommitMembership atomically replaces a list's membership sequence with
// desired and rewrites the list record itself (its audit fields change with
// membership). Entries absent from desired are deleted; entries whose stored
// bytes already match are rewritten verbatim, which keeps the footprint
// delta exact either way.
func (s *Store) CommitMembership(list entity.EventList, desired []entity.EventListEntry) error {
	rawList, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("store: encode event list %s: %w", list.ID, err)
	}
	ops := []op{setOp(listKey(list.ID), rawList)}

	keep := make(map[string]bool, len(desired))
	for _, e := range desired {
		keep[e.EventID] = true
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("store: encode entry %s/%s: %w", list.ID, e.EventID, err)
		}
		ops = append(ops, setOp(entryKey(list.ID, e.EventID), raw))
	}

	stored, err := s.Entries(list.ID)
	if err != nil {
		return err
	}
	for _, e := range stored {
		if !keep[e.EventID] {
			ops = append(ops, delOp(entryKey(list.ID, e.EventID)))
		}
	}
	return s.commit(ops)
}
