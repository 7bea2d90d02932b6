package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
)

// Store is the keyed entity container for events and event lists, backed by
// a metered Pebble keyspace.
//
// It maintains a logical footprint counter: the byte length of every live
// entity key and value. The counter is rebuilt by a scan at open and updated
// inside every commit, so a reading taken before a mutation and one taken
// after price exactly that mutation's marginal bytes.
//
// Mutating commits serialize behind one mutex. A mutating call therefore
// observes a stable footprint between its snapshot and its measurement;
// separate top-level calls may still interleave between commits, which is
// the concurrency model settlement read-backs have to tolerate.
type Store struct {
	db *pebblestore.DB

	mu        sync.Mutex
	footprint uint64
}

// Open wraps db and rebuilds the logical footprint from the entity keyspaces.
func Open(db *pebblestore.DB) (*Store, error) {
	s := &Store{db: db}
	for _, prefix := range [][]byte{eventPrefix, listPrefix, entryPrefix} {
		err := db.ScanPrefix(prefix, func(k, v []byte) error {
			s.footprint += uint64(len(k) + len(v))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("store: rebuild footprint: %w", err)
		}
	}
	return s, nil
}

// Footprint returns the current logical byte usage of all stored entities.
func (s *Store) Footprint() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.footprint
}

// op is one key write or delete inside a commit.
type op struct {
	key    []byte
	value  []byte // nil means delete
	delete bool
}

func setOp(key, value []byte) op { return op{key: key, value: value} }
func delOp(key []byte) op        { return op{key: key, delete: true} }

// commit applies ops as one atomic batch and adjusts the footprint by the
// exact byte delta. Deleting an absent key is a no-op for both the batch and
// the counter.
func (s *Store) commit(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.db.NewBatch()
	defer batch.Close()

	var delta int64
	for _, o := range ops {
		prior, err := s.db.Get(o.key)
		switch {
		case err == nil:
			delta -= int64(len(o.key) + len(prior))
		case errors.Is(err, pebblestore.ErrNotFound):
			// new key
		default:
			return fmt.Errorf("store: read prior value: %w", err)
		}
		if o.delete {
			if err := batch.Delete(o.key, nil); err != nil {
				return fmt.Errorf("store: batch delete: %w", err)
			}
			continue
		}
		if err := batch.Set(o.key, o.value, nil); err != nil {
			return fmt.Errorf("store: batch set: %w", err)
		}
		delta += int64(len(o.key) + len(o.value))
	}

	if err := s.db.CommitBatch(context.Background(), batch); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	if delta >= 0 {
		s.footprint += uint64(delta)
	} else {
		s.footprint -= uint64(-delta)
	}
	return nil
}
