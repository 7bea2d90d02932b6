package eventlistsvc

import (
	"context"
	"time"

	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/fault"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/notify"
	"github.com/NEARFoundation/events-platform/internal/ordering"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

// Service provides metered CRUD over event lists and their ordered
// membership. Membership mutations rewrite the list record and the per-list
// entry keyspace in one atomic batch; every successful mutation leaves
// positions contiguous 0..n-1.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
	now    func() time.Time
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = rt.Logger().With(logpkg.Component("eventlists"))
	}
	return &Service{rt: rt, logger: logger, now: time.Now}
}

// CreateEventList stores a new empty list owned by the caller and schedules
// a read-back of the stored record as the settlement value.
func (s *Service) CreateEventList(ctx context.Context, call mutation.Call, fields entity.EventListFields) (*mutation.Pending, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if fields.Name == nil || *fields.Name == "" {
		return nil, fault.InvalidArgument("event list name is required")
	}

	now := s.now().UTC()
	list := entity.EventList{
		ID:            s.rt.IDs().NewID(),
		Owner:         call.Caller,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	list.Apply(fields)

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			if err := s.rt.Store().PutEventList(list); err != nil {
				return nil, err
			}
			return list.ID, nil
		},
		Rollback: func() error {
			return s.rt.Store().DeleteEventList(list.ID)
		},
		ReadBack: func() (interface{}, error) {
			stored, ok, err := s.rt.Store().GetEventList(list.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fault.NotFound("event list %s gone before settlement", list.ID)
			}
			return stored, nil
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "created", list.ID, call.Caller)
	return p, nil
}

// UpdateEventList merges the set fields into an existing list. Only the
// owner may update.
func (s *Service) UpdateEventList(ctx context.Context, call mutation.Call, id string, fields entity.EventListFields) (*mutation.Pending, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	old, err := s.ownedList(id, call.Caller)
	if err != nil {
		return nil, err
	}

	updated := old
	updated.Apply(fields)
	updated.LastUpdatedAt = s.now().UTC()

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			if err := s.rt.Store().PutEventList(updated); err != nil {
				return nil, err
			}
			return updated, nil
		},
		Rollback: func() error {
			return s.rt.Store().PutEventList(old)
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", id, call.Caller)
	return p, nil
}

// RemoveEventList deletes a list and all of its membership entries. Only
// the owner may remove.
func (s *Service) RemoveEventList(ctx context.Context, call mutation.Call, id string) (*mutation.Pending, error) {
	old, err := s.ownedList(id, call.Caller)
	if err != nil {
		return nil, err
	}
	oldEntries, err := s.rt.Store().Entries(id)
	if err != nil {
		return nil, err
	}

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			return nil, s.rt.Store().DeleteEventList(id)
		},
		Rollback: func() error {
			return s.rt.Store().CommitMembership(old, oldEntries)
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "removed", id, call.Caller)
	return p, nil
}

// AddEventToEventList inserts an event into the list's ordered membership at
// position. Only the list owner may add; the event must exist. Position is a
// hint: the stored sequence is renumbered contiguous 0..n-1.
func (s *Service) AddEventToEventList(ctx context.Context, call mutation.Call, listID, eventID string, position int) (*mutation.Pending, error) {
	list, err := s.ownedList(listID, call.Caller)
	if err != nil {
		return nil, err
	}
	hasEvent, err := s.rt.Store().HasEvent(eventID)
	if err != nil {
		return nil, err
	}
	if !hasEvent {
		return nil, fault.NotFound("event %s not found", eventID)
	}
	oldEntries, err := s.rt.Store().Entries(listID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	newEntries, err := ordering.Insert(oldEntries, eventID, position, call.Caller, now)
	if err != nil {
		return nil, err
	}
	updated := list
	updated.LastUpdatedAt = now

	p, err := s.executeMembership(call, list, oldEntries, updated, newEntries)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", listID, call.Caller)
	return p, nil
}

// RemoveEventFromEventList removes an event from the list's membership and
// renumbers the remainder. Only the list owner may remove.
func (s *Service) RemoveEventFromEventList(ctx context.Context, call mutation.Call, listID, eventID string) (*mutation.Pending, error) {
	list, err := s.ownedList(listID, call.Caller)
	if err != nil {
		return nil, err
	}
	oldEntries, err := s.rt.Store().Entries(listID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	newEntries, err := ordering.Remove(oldEntries, eventID, call.Caller, now)
	if err != nil {
		return nil, err
	}
	updated := list
	updated.LastUpdatedAt = now

	p, err := s.executeMembership(call, list, oldEntries, updated, newEntries)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", listID, call.Caller)
	return p, nil
}

// executeMembership runs one membership rewrite under the mutation engine,
// rolling back to the prior list record and entry set on shortfall.
func (s *Service) executeMembership(call mutation.Call, oldList entity.EventList, oldEntries []entity.EventListEntry, newList entity.EventList, newEntries []entity.EventListEntry) (*mutation.Pending, error) {
	return s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			if err := s.rt.Store().CommitMembership(newList, newEntries); err != nil {
				return nil, err
			}
			return newEntries, nil
		},
		Rollback: func() error {
			return s.rt.Store().CommitMembership(oldList, oldEntries)
		},
	})
}

// GetEventList returns the list by id, optionally resolving its ordered
// membership into the view.
func (s *Service) GetEventList(id string, includeEvents bool) (entity.EventListView, error) {
	list, ok, err := s.rt.Store().GetEventList(id)
	if err != nil {
		return entity.EventListView{}, err
	}
	if !ok {
		return entity.EventListView{}, fault.NotFound("event list %s not found", id)
	}
	view := entity.EventListView{EventList: list}
	if includeEvents {
		entries, err := s.rt.Store().Entries(id)
		if err != nil {
			return entity.EventListView{}, err
		}
		view.Events = entries
	}
	return view, nil
}

// GetAllEventLists returns every stored list record.
func (s *Service) GetAllEventLists() ([]entity.EventList, error) {
	return s.rt.Store().AllEventLists()
}

// GetAllEventListsByAccount returns the lists owned by account.
func (s *Service) GetAllEventListsByAccount(account string) ([]entity.EventList, error) {
	all, err := s.rt.Store().AllEventLists()
	if err != nil {
		return nil, err
	}
	out := make([]entity.EventList, 0)
	for _, l := range all {
		if l.Owner == account {
			out = append(out, l)
		}
	}
	return out, nil
}

// HasEventList reports whether the list exists.
func (s *Service) HasEventList(id string) (bool, error) {
	return s.rt.Store().HasEventList(id)
}

// IsEventInEventList reports membership. An absent list or event is simply
// "not a member", never an error.
func (s *Service) IsEventInEventList(listID, eventID string) (bool, error) {
	_, ok, err := s.rt.Store().GetEntry(listID, eventID)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// GetEventPositionInEventList returns the event's position in the list.
// Returns NotFound when the list or the membership is absent.
func (s *Service) GetEventPositionInEventList(listID, eventID string) (int, error) {
	hasList, err := s.rt.Store().HasEventList(listID)
	if err != nil {
		return 0, err
	}
	if !hasList {
		return 0, fault.NotFound("event list %s not found", listID)
	}
	entry, ok, err := s.rt.Store().GetEntry(listID, eventID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fault.NotFound("event %s is not in list %s", eventID, listID)
	}
	return entry.Position, nil
}

// GetEventsInEventList returns the list's membership in position order,
// truncated to limit when limit >= 0 is given. A negative limit is an
// InvalidArgument; limit 0 means "no limit".
func (s *Service) GetEventsInEventList(listID string, limit int) ([]entity.EventListEntry, error) {
	if limit < 0 {
		return nil, fault.InvalidArgument("limit must not be negative, got %d", limit)
	}
	hasList, err := s.rt.Store().HasEventList(listID)
	if err != nil {
		return nil, err
	}
	if !hasList {
		return nil, fault.NotFound("event list %s not found", listID)
	}
	entries, err := s.rt.Store().Entries(listID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// ownedList loads a list and enforces the owner-only rule.
func (s *Service) ownedList(id, caller string) (entity.EventList, error) {
	list, ok, err := s.rt.Store().GetEventList(id)
	if err != nil {
		return entity.EventList{}, err
	}
	if !ok {
		return entity.EventList{}, fault.NotFound("event list %s not found", id)
	}
	if list.Owner != caller {
		return entity.EventList{}, fault.Forbidden("only the owner may change event list %s", id)
	}
	return list, nil
}

// publish emits a best-effort change notification; failures are logged and
// never fail the mutation.
func (s *Service) publish(ctx context.Context, op, id, actor string) {
	err := s.rt.Notifier().Publish(ctx, notify.Change{
		Kind:  "event_list",
		Op:    op,
		ID:    id,
		Actor: actor,
		At:    s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("change notification failed",
			logpkg.Str("op", op), logpkg.Str("id", id), logpkg.Err(err))
	}
}
