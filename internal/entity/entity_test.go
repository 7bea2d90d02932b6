package entity

import (
	"testing"
	"time"

	"github.com/NEARFoundation/events-platform/internal/fault"
)

func strp(s string) *string { return &s }

func TestEventApplyLeavesIdentityAlone(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ev := Event{ID: "e1", Owner: "alice.near", CreatedAt: created, Name: "old"}
	typ := EventTypeMixed
	ev.Apply(EventFields{Name: strp("new"), Type: &typ})
	if ev.ID != "e1" || ev.Owner != "alice.near" || !ev.CreatedAt.Equal(created) {
		t.Fatalf("identity fields changed: %+v", ev)
	}
	if ev.Name != "new" || ev.Type != EventTypeMixed {
		t.Fatalf("apply missed fields: %+v", ev)
	}
}

func TestEventApplyIgnoresUnsetFields(t *testing.T) {
	ev := Event{Name: "keep", Location: "berlin"}
	ev.Apply(EventFields{Location: strp("lisbon")})
	if ev.Name != "keep" {
		t.Fatalf("unset field overwritten: %q", ev.Name)
	}
	if ev.Location != "lisbon" {
		t.Fatalf("set field not applied: %q", ev.Location)
	}
}

func TestEventFieldsValidateEnums(t *testing.T) {
	bad := EventType("holographic")
	err := EventFields{Type: &bad}.Validate()
	if fault.KindOf(err) != fault.KindInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}

	badStatus := EventStatus("archived")
	err = EventFields{Status: &badStatus}.Validate()
	if fault.KindOf(err) != fault.KindInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}

	imgs := []Image{{URL: "https://x/banner.png", Type: "poster"}}
	err = EventFields{Images: &imgs}.Validate()
	if fault.KindOf(err) != fault.KindInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}

	ok := EventTypeVirtual
	st := EventStatusDraft
	goodImgs := []Image{{URL: "https://x/banner.png", Type: ImageTypeBanner}}
	links := []Link{{Text: "join", Type: LinkTypeJoinStream, URL: "https://x/live"}}
	if err := (EventFields{Type: &ok, Status: &st, Images: &goodImgs, Links: &links}).Validate(); err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}
}

func TestEventListApply(t *testing.T) {
	l := EventList{ID: "l1", Owner: "alice.near", Name: "old"}
	perms := []Permission{{AccountID: "bob.near", Permissions: []PermissionType{PermissionAddListEntry}}}
	l.Apply(EventListFields{Name: strp("new"), Permissions: &perms})
	if l.ID != "l1" || l.Owner != "alice.near" {
		t.Fatalf("identity fields changed: %+v", l)
	}
	if l.Name != "new" || len(l.Permissions) != 1 {
		t.Fatalf("apply missed fields: %+v", l)
	}
}
