package eventlistsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cfgpkg "github.com/NEARFoundation/events-platform/internal/config"
	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/fault"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/payment"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	eventsvc "github.com/NEARFoundation/events-platform/internal/services/events"
	pebblestore "github.com/NEARFoundation/events-platform/internal/storage/pebble"
)

const plenty = uint64(100_000_000)

type fixture struct {
	lists   *Service
	events  *eventsvc.Service
	capture *payment.Capture
	disp    *mutation.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
		Config:  cfgpkg.Default(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	capture := &payment.Capture{}
	return &fixture{
		lists:   New(rt),
		events:  eventsvc.New(rt),
		capture: capture,
		disp:    mutation.NewDispatcher(capture, nil),
	}
}

func strp(s string) *string { return &s }

func (f *fixture) call(caller string) mutation.Call {
	return mutation.Call{Caller: caller, Attached: plenty}
}

func (f *fixture) createList(t *testing.T, owner, name string) entity.EventList {
	t.Helper()
	p, err := f.lists.CreateEventList(context.Background(), f.call(owner), entity.EventListFields{Name: strp(name)})
	require.NoError(t, err)
	v, err := f.disp.Settle(context.Background(), p)
	require.NoError(t, err)
	return v.(entity.EventList)
}

func (f *fixture) createEvent(t *testing.T, owner, name string) entity.Event {
	t.Helper()
	etype := entity.EventTypeVirtual
	p, err := f.events.CreateEvent(context.Background(), f.call(owner),
		entity.EventFields{Name: strp(name), Type: &etype})
	require.NoError(t, err)
	v, err := f.disp.Settle(context.Background(), p)
	require.NoError(t, err)
	return v.(entity.Event)
}

func (f *fixture) add(t *testing.T, caller, listID, eventID string, pos int) {
	t.Helper()
	p, err := f.lists.AddEventToEventList(context.Background(), f.call(caller), listID, eventID, pos)
	require.NoError(t, err)
	_, err = f.disp.Settle(context.Background(), p)
	require.NoError(t, err)
}

func (f *fixture) order(t *testing.T, listID string) []string {
	t.Helper()
	entries, err := f.lists.GetEventsInEventList(listID, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for i, e := range entries {
		require.Equal(t, i, e.Position)
		ids = append(ids, e.EventID)
	}
	return ids
}

func TestCreateEventListReadBack(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	require.Equal(t, "conferences", list.Name)
	require.Equal(t, "alice.near", list.Owner)
	require.NotEmpty(t, list.ID)
}

func TestCreateEventListShortfallRollsBack(t *testing.T) {
	f := newFixture(t)
	_, err := f.lists.CreateEventList(context.Background(),
		mutation.Call{Caller: "alice.near", Attached: 1},
		entity.EventListFields{Name: strp("conferences")})
	require.Equal(t, fault.KindInsufficientPayment, fault.KindOf(err))

	all, err := f.lists.GetAllEventLists()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUpdateEventListOwnerOnly(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")

	_, err := f.lists.UpdateEventList(context.Background(), f.call("mallory.near"),
		list.ID, entity.EventListFields{Name: strp("stolen")})
	require.True(t, fault.IsForbidden(err))

	p, err := f.lists.UpdateEventList(context.Background(), f.call("alice.near"),
		list.ID, entity.EventListFields{Description: strp("the good ones")})
	require.NoError(t, err)
	v, err := f.disp.Settle(context.Background(), p)
	require.NoError(t, err)
	got := v.(entity.EventList)
	require.Equal(t, "conferences", got.Name)
	require.Equal(t, "the good ones", got.Description)
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	c := f.createEvent(t, "alice.near", "c")

	f.add(t, "alice.near", list.ID, a.ID, 0)
	f.add(t, "alice.near", list.ID, b.ID, 1)
	f.add(t, "alice.near", list.ID, c.ID, 2)

	require.Equal(t, []string{a.ID, b.ID, c.ID}, f.order(t, list.ID))
}

func TestInsertInMiddleShiftsTail(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	c := f.createEvent(t, "alice.near", "c")

	f.add(t, "alice.near", list.ID, a.ID, 0)
	f.add(t, "alice.near", list.ID, b.ID, 1)
	f.add(t, "alice.near", list.ID, c.ID, 0)

	require.Equal(t, []string{c.ID, a.ID, b.ID}, f.order(t, list.ID))
}

func TestOutOfRangePositionHintsClampViaRenumber(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	c := f.createEvent(t, "alice.near", "c")

	f.add(t, "alice.near", list.ID, a.ID, 100)
	f.add(t, "alice.near", list.ID, b.ID, -5)
	f.add(t, "alice.near", list.ID, c.ID, 1)

	// b's negative hint sorts first, c lands between, a's big hint stays last.
	require.Equal(t, []string{b.ID, c.ID, a.ID}, f.order(t, list.ID))
}

func TestRemoveEventRenumbers(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	c := f.createEvent(t, "alice.near", "c")
	f.add(t, "alice.near", list.ID, a.ID, 0)
	f.add(t, "alice.near", list.ID, b.ID, 1)
	f.add(t, "alice.near", list.ID, c.ID, 2)

	p, err := f.lists.RemoveEventFromEventList(context.Background(), f.call("alice.near"), list.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), p.Cost)
	_, err = f.disp.Settle(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, []string{a.ID, c.ID}, f.order(t, list.ID))

	_, err = f.lists.RemoveEventFromEventList(context.Background(), f.call("alice.near"), list.ID, b.ID)
	require.True(t, fault.IsNotFound(err))
}

func TestDuplicateMembershipConflictLeavesListUnchanged(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	f.add(t, "alice.near", list.ID, a.ID, 0)

	_, err := f.lists.AddEventToEventList(context.Background(), f.call("alice.near"), list.ID, a.ID, 3)
	require.True(t, fault.IsConflict(err))

	require.Equal(t, []string{a.ID}, f.order(t, list.ID))
}

func TestAddRequiresExistingEventAndOwner(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "bob.near", "a")

	_, err := f.lists.AddEventToEventList(context.Background(), f.call("alice.near"), list.ID, "no-such-event", 0)
	require.True(t, fault.IsNotFound(err))

	_, err = f.lists.AddEventToEventList(context.Background(), f.call("mallory.near"), list.ID, a.ID, 0)
	require.True(t, fault.IsForbidden(err))

	_, err = f.lists.AddEventToEventList(context.Background(), f.call("alice.near"), "no-such-list", a.ID, 0)
	require.True(t, fault.IsNotFound(err))
}

func TestAddShortfallRollsBackMembership(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	f.add(t, "alice.near", list.ID, a.ID, 0)

	_, err := f.lists.AddEventToEventList(context.Background(),
		mutation.Call{Caller: "alice.near", Attached: 0}, list.ID, b.ID, 0)
	require.Equal(t, fault.KindInsufficientPayment, fault.KindOf(err))

	require.Equal(t, []string{a.ID}, f.order(t, list.ID))
	ok, err := f.lists.IsEventInEventList(list.ID, b.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRemoveEventListCascades(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	f.add(t, "alice.near", list.ID, a.ID, 0)

	p, err := f.lists.RemoveEventList(context.Background(), f.call("alice.near"), list.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), p.Cost)
	_, err = f.disp.Settle(context.Background(), p)
	require.NoError(t, err)

	ok, err := f.lists.HasEventList(list.ID)
	require.NoError(t, err)
	require.False(t, ok)

	member, err := f.lists.IsEventInEventList(list.ID, a.ID)
	require.NoError(t, err)
	require.False(t, member)

	// The event itself survives list deletion.
	has, err := f.events.HasEvent(a.ID)
	require.NoError(t, err)
	require.True(t, has)
}

func TestMembershipReadPaths(t *testing.T) {
	f := newFixture(t)
	list := f.createList(t, "alice.near", "conferences")
	a := f.createEvent(t, "alice.near", "a")
	b := f.createEvent(t, "alice.near", "b")
	f.add(t, "alice.near", list.ID, a.ID, 0)
	f.add(t, "alice.near", list.ID, b.ID, 1)

	pos, err := f.lists.GetEventPositionInEventList(list.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	_, err = f.lists.GetEventPositionInEventList(list.ID, "no-such-event")
	require.True(t, fault.IsNotFound(err))
	_, err = f.lists.GetEventPositionInEventList("no-such-list", a.ID)
	require.True(t, fault.IsNotFound(err))

	// Absent ids are "not a member", never an error.
	member, err := f.lists.IsEventInEventList("no-such-list", "no-such-event")
	require.NoError(t, err)
	require.False(t, member)

	limited, err := f.lists.GetEventsInEventList(list.ID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, a.ID, limited[0].EventID)

	_, err = f.lists.GetEventsInEventList(list.ID, -1)
	require.Equal(t, fault.KindInvalidArgument, fault.KindOf(err))

	view, err := f.lists.GetEventList(list.ID, true)
	require.NoError(t, err)
	require.Len(t, view.Events, 2)

	bare, err := f.lists.GetEventList(list.ID, false)
	require.NoError(t, err)
	require.Empty(t, bare.Events)

	_, err = f.lists.GetEventList("no-such-list", false)
	require.True(t, fault.IsNotFound(err))

	byAccount, err := f.lists.GetAllEventListsByAccount("alice.near")
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
}
