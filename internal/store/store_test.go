package store

import (
	"testing"
	"time"

	"github.com/NEARFoundation/events-platform/internal/entity"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	s, err := Open(db)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testEvent(id string) entity.Event {
	return entity.Event{
		ID:            id,
		Owner:         "alice.near",
		CreatedAt:     testTime,
		LastUpdatedAt: testTime,
		Name:          "gophercon",
		Category:      "conference",
		Type:          entity.EventTypeInPerson,
		Status:        entity.EventStatusPublished,
		Location:      "berlin",
	}
}

func testList(id string) entity.EventList {
	return entity.EventList{
		ID:            id,
		Owner:         "alice.near",
		Name:          "summer",
		CreatedAt:     testTime,
		LastUpdatedAt: testTime,
	}
}

func entry(listID, eventID string, pos int) entity.EventListEntry {
	_ = listID
	return entity.EventListEntry{
		EventID:       eventID,
		Position:      pos,
		AddedBy:       "alice.near",
		LastUpdatedBy: "alice.near",
		LastUpdatedAt: testTime,
	}
}

func TestEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ev := testEvent("e1")
	if err := s.PutEvent(ev); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.GetEvent("e1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != ev.Name || got.Owner != ev.Owner || got.Type != ev.Type {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if has, _ := s.HasEvent("e1"); !has {
		t.Fatalf("has: want true")
	}
	if err := s.DeleteEvent("e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.GetEvent("e1"); ok {
		t.Fatalf("event survived delete")
	}
}

func TestFootprintTracksWrites(t *testing.T) {
	s := openTestStore(t)
	if s.Footprint() != 0 {
		t.Fatalf("fresh store footprint: %d", s.Footprint())
	}
	if err := s.PutEvent(testEvent("e1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	after := s.Footprint()
	if after == 0 {
		t.Fatalf("footprint did not grow")
	}

	// Overwriting with identical bytes keeps the footprint unchanged.
	if err := s.PutEvent(testEvent("e1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if s.Footprint() != after {
		t.Fatalf("identical rewrite changed footprint: %d != %d", s.Footprint(), after)
	}

	// Growing the record grows the footprint.
	big := testEvent("e1")
	big.Description = "a considerably longer description of the same event"
	if err := s.PutEvent(big); err != nil {
		t.Fatalf("put: %v", err)
	}
	if s.Footprint() <= after {
		t.Fatalf("footprint did not grow on larger record")
	}

	// Deleting returns to zero.
	if err := s.DeleteEvent("e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Footprint() != 0 {
		t.Fatalf("footprint after delete: %d", s.Footprint())
	}
}

func TestFootprintRebuiltOnOpen(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s1, err := Open(db)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s1.PutEvent(testEvent("e1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s1.PutEventList(testList("l1")); err != nil {
		t.Fatalf("put list: %v", err)
	}

	s2, err := Open(db)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if s2.Footprint() != s1.Footprint() {
		t.Fatalf("rebuilt footprint %d != live %d", s2.Footprint(), s1.Footprint())
	}
}

func TestMembershipCommitAndCascade(t *testing.T) {
	s := openTestStore(t)
	l := testList("l1")
	if err := s.PutEventList(l); err != nil {
		t.Fatalf("put list: %v", err)
	}
	desired := []entity.EventListEntry{entry("l1", "e1", 0), entry("l1", "e2", 1)}
	if err := s.CommitMembership(l, desired); err != nil {
		t.Fatalf("commit membership: %v", err)
	}

	got, err := s.Entries("l1")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "e1" || got[1].EventID != "e2" {
		t.Fatalf("entries: %+v", got)
	}
	if e, ok, _ := s.GetEntry("l1", "e2"); !ok || e.Position != 1 {
		t.Fatalf("get entry: ok=%v %+v", ok, e)
	}

	// Replacing the sequence drops absent members.
	if err := s.CommitMembership(l, []entity.EventListEntry{entry("l1", "e2", 0)}); err != nil {
		t.Fatalf("commit membership: %v", err)
	}
	got, _ = s.Entries("l1")
	if len(got) != 1 || got[0].EventID != "e2" {
		t.Fatalf("entries after shrink: %+v", got)
	}

	// Deleting the list cascades its entries and frees all their bytes.
	if err := s.DeleteEventList("l1"); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	got, _ = s.Entries("l1")
	if len(got) != 0 {
		t.Fatalf("entries survived list delete: %+v", got)
	}
	if s.Footprint() != 0 {
		t.Fatalf("footprint after cascade: %d", s.Footprint())
	}
}

func TestEntriesSortedByPosition(t *testing.T) {
	s := openTestStore(t)
	l := testList("l1")
	if err := s.PutEventList(l); err != nil {
		t.Fatalf("put list: %v", err)
	}
	// commit out of order; Entries must sort by position
	desired := []entity.EventListEntry{entry("l1", "zz", 0), entry("l1", "aa", 1), entry("l1", "mm", 2)}
	if err := s.CommitMembership(l, desired); err != nil {
		t.Fatalf("commit: %v", err)
	}
	got, err := s.Entries("l1")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	for i, want := range []string{"zz", "aa", "mm"} {
		if got[i].EventID != want {
			t.Fatalf("slot %d: got %s want %s", i, got[i].EventID, want)
		}
	}
}

func TestListKeyspacesDoNotCollide(t *testing.T) {
	s := openTestStore(t)
	if err := s.PutEventList(testList("x")); err != nil {
		t.Fatalf("put list: %v", err)
	}
	if err := s.PutEvent(testEvent("x")); err != nil {
		t.Fatalf("put event: %v", err)
	}
	lists, err := s.AllEventLists()
	if err != nil {
		t.Fatalf("all lists: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("lists: %+v", lists)
	}
	events, err := s.AllEvents()
	if err != nil {
		t.Fatalf("all events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events: %+v", events)
	}
}
