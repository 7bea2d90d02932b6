package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NEARFoundation/events-platform/internal/entity"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
)

// GetEvent returns the event with the given id, and whether it exists.
func (s *Store) GetEvent(id string) (entity.Event, bool, error) {
	raw, err := s.db.Get(eventKey(id))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return entity.Event{}, false, nil
	}
	if err != nil {
		return entity.Event{}, false, fmt.Errorf("store: get event %s: %w", id, err)
	}
	var ev entity.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return entity.Event{}, false, fmt.Errorf("store: decode event %s: %w", id, err)
	}
	return ev, true, nil
}

// PutEvent writes the event record, creating or replacing it.
func (s *Store) PutEvent(ev entity.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("store: encode event %s: %w", ev.ID, err)
	}
	return s.commit([]op{setOp(eventKey(ev.ID), raw)})
}

// DeleteEvent removes the event record. Deleting an absent id is a no-op.
func (s *Store) DeleteEvent(id string) error {
	return s.commit([]op{delOp(eventKey(id))})
}

// HasEvent reports whether an event with the given id exists.
func (s *Store) HasEvent(id string) (bool, error) {
	_, ok, err := s.GetEvent(id)
	return ok, err
}

// AllEvents returns every stored event. Iteration order follows the key
// order of the underlying store and carries no meaning; callers sort.
func (s *Store) AllEvents() ([]entity.Event, error) {
	var out []entity.Event
	err := s.db.ScanPrefix(eventPrefix, func(_, v []byte) error {
		var ev entity.Event
		if err := json.Unmarshal(v, &ev); err != nil {
			return fmt.Errorf("store: decode event: %w", err)
		}
		out = append(out, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
