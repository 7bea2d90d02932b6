package eventsvc

import (
	"context"
	"sort"
	"time"

	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/fault"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/notify"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

// Service provides metered CRUD over event records. Mutating entry points
// return a *mutation.Pending the caller settles through the runtime's
// Dispatcher; reads go straight to the store.
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
		logger = rt.Logger().With(logpkg.Component("events"))
	}
	return &Service{rt: rt, logger: logger, now: time.Now}
}

// CreateEvent stores a new event owned by the caller and schedules a
// read-back of the stored record as the settlement value. Name and type are
// required; status defaults to draft when unset.
func (s *Service) CreateEvent(ctx context.Context, call mutation.Call, fields entity.EventFields) (*mutation.Pending, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if fields.Name == nil || *fields.Name == "" {
		return nil, fault.InvalidArgument("event name is required")
	}
	if fields.Type == nil {
		return nil, fault.InvalidArgument("event type is required")
	}

	now := s.now().UTC()
	ev := entity.Event{
		ID:            s.rt.IDs().NewID(),
		Owner:         call.Caller,
		CreatedAt:     now,
		LastUpdatedAt: now,
		Status:        entity.EventStatusDraft,
	}
	ev.Apply(fields)

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			if err := s.rt.Store().PutEvent(ev); err != nil {
				return nil, err
			}
			return ev.ID, nil
		},
		Rollback: func() error {
			return s.rt.Store().DeleteEvent(ev.ID)
		},
		ReadBack: func() (interface{}, error) {
			stored, ok, err := s.rt.Store().GetEvent(ev.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fault.NotFound("event %s gone before settlement", ev.ID)
			}
			return stored, nil
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "created", ev.ID, call.Caller)
	return p, nil
}

// UpdateEvent merges the set fields into an existing event. Only the owner
// may update; the pre-mutation record is restored on payment shortfall.
func (s *Service) UpdateEvent(ctx context.Context, call mutation.Call, id string, fields entity.EventFields) (*mutation.Pending, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	old, ok, err := s.rt.Store().GetEvent(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fault.NotFound("event %s not found", id)
	}
	if old.Owner != call.Caller {
		return nil, fault.Forbidden("only the owner may update event %s", id)
	}

	updated := old
	updated.Apply(fields)
	updated.LastUpdatedAt = s.now().UTC()

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			if err := s.rt.Store().PutEvent(updated); err != nil {
				return nil, err
			}
			return updated, nil
		},
		Rollback: func() error {
			return s.rt.Store().PutEvent(old)
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "updated", id, call.Caller)
	return p, nil
}

// RemoveEvent deletes an event. Only the owner may remove; deletion shrinks
// the footprint so the whole attached payment comes back as refund.
func (s *Service) RemoveEvent(ctx context.Context, call mutation.Call, id string) (*mutation.Pending, error) {
	old, ok, err := s.rt.Store().GetEvent(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fault.NotFound("event %s not found", id)
	}
	if old.Owner != call.Caller {
		return nil, fault.Forbidden("only the owner may remove event %s", id)
	}

	p, err := s.rt.Engine().Execute(call, mutation.Mutation{
		Apply: func() (interface{}, error) {
			return nil, s.rt.Store().DeleteEvent(id)
		},
		Rollback: func() error {
			return s.rt.Store().PutEvent(old)
		},
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "removed", id, call.Caller)
	return p, nil
}

// GetEvent returns the event by id.
func (s *Service) GetEvent(id string) (entity.Event, error) {
	ev, ok, err := s.rt.Store().GetEvent(id)
	if err != nil {
		return entity.Event{}, err
	}
	if !ok {
		return entity.Event{}, fault.NotFound("event %s not found", id)
	}
	return ev, nil
}

// HasEvent reports whether the event exists.
func (s *Service) HasEvent(id string) (bool, error) {
	return s.rt.Store().HasEvent(id)
}

// GetAllEvents returns every stored event, optionally narrowed by a CEL
// filter expression over name/category/status/event_type/location/owner and
// the schedule bounds in unix millis.
func (s *Service) GetAllEvents(filter string) ([]entity.Event, error) {
	f, err := newCELFilter(filter)
	if err != nil {
		return nil, err
	}
	all, err := s.rt.Store().AllEvents()
	if err != nil {
		return nil, err
	}
	if !f.enabled {
		return all, nil
	}
	out := make([]entity.Event, 0, len(all))
	for _, ev := range all {
		if f.Eval(ev) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// GetAllEventsByAccount returns the events owned by account.
func (s *Service) GetAllEventsByAccount(account string) ([]entity.Event, error) {
	all, err := s.rt.Store().AllEvents()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0)
	for _, ev := range all {
		if ev.Owner == account {
			out = append(out, ev)
		}
	}
	return out, nil
}

// GetLatestEventByAccount returns the account's most recently created event.
func (s *Service) GetLatestEventByAccount(account string) (entity.Event, error) {
	owned, err := s.GetAllEventsByAccount(account)
	if err != nil {
		return entity.Event{}, err
	}
	if len(owned) == 0 {
		return entity.Event{}, fault.NotFound("no events for account %s", account)
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID < owned[j].ID
	})
	return owned[0], nil
}

// publish emits a best-effort change notification; failures are logged and
// never fail the mutation.
func (s *Service) publish(ctx context.Context, op, id, actor string) {
	err := s.rt.Notifier().Publish(ctx, notify.Change{
		Kind:  "event",
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
