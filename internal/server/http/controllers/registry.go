package controllers

import (
	"net/http"

	"github.com/NEARFoundation/events-platform/internal/auth"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	eventlistsvc "github.com/NEARFoundation/events-platform/internal/services/eventlists"
	eventsvc "github.com/NEARFoundation/events-platform/internal/services/events"
)

// ControllerRegistry manages all HTTP controllers.
type ControllerRegistry struct {
	general    *GeneralController
	events     *EventsController
	eventLists *EventListsController
}

// NewControllerRegistry creates a new controller registry wired to the
// provided runtime and services. The verifier guards the payable routes.
func NewControllerRegistry(rt *runtime.Runtime, events *eventsvc.Service, lists *eventlistsvc.Service, verifier auth.Verifier) *ControllerRegistry {
	return &ControllerRegistry{
		general:    NewGeneralController(rt),
		events:     NewEventsController(rt, events, verifier),
		eventLists: NewEventListsController(rt, lists, verifier),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
	r.eventLists.RegisterRoutes(mux)
}
