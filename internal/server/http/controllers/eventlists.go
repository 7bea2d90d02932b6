package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/NEARFoundation/events-platform/internal/auth"
	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	eventlistsvc "github.com/NEARFoundation/events-platform/internal/services/eventlists"
)

// EventListsController handles all event-list HTTP endpoints, including the
// ordered membership operations.
type EventListsController struct {
	rt       *runtime.Runtime
	svc      *eventlistsvc.Service
	verifier auth.Verifier
}

// NewEventListsController creates a new event-lists controller.
func NewEventListsController(rt *runtime.Runtime, svc *eventlistsvc.Service, verifier auth.Verifier) *EventListsController {
	return &EventListsController{rt: rt, svc: svc, verifier: verifier}
}

// RegisterRoutes registers all event-list routes with the given mux.
func (c *EventListsController) RegisterRoutes(mux *http.ServeMux) {
	// Payable mutations
	mux.HandleFunc("/v1/event-lists/create", requireAuth(c.verifier, c.handleCreate))
	mux.HandleFunc("/v1/event-lists/update", requireAuth(c.verifier, c.handleUpdate))
	mux.HandleFunc("/v1/event-lists/remove", requireAuth(c.verifier, c.handleRemove))
	mux.HandleFunc("/v1/event-lists/add-event", requireAuth(c.verifier, c.handleAddEvent))
	mux.HandleFunc("/v1/event-lists/remove-event", requireAuth(c.verifier, c.handleRemoveEvent))

	// Reads
	mux.HandleFunc("/v1/event-lists", c.handleList)
	mux.HandleFunc("/v1/event-lists/get", c.handleGet)
	mux.HandleFunc("/v1/event-lists/has", c.handleHas)
	mux.HandleFunc("/v1/event-lists/by-account", c.handleByAccount)
	mux.HandleFunc("/v1/event-lists/contains", c.handleContains)
	mux.HandleFunc("/v1/event-lists/position", c.handlePosition)
	mux.HandleFunc("/v1/event-lists/entries", c.handleEntries)
}

type listMutationReq struct {
	ID      string                 `json:"id,omitempty"`
	Deposit uint64                 `json:"deposit"`
	Fields  entity.EventListFields `json:"fields"`
}

type membershipReq struct {
	ListID   string `json:"list_id"`
	EventID  string `json:"event_id"`
	Position int    `json:"position"`
	Deposit  uint64 `json:"deposit"`
}

func (c *EventListsController) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req listMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.CreateEventList(r.Context(), call, req.Fields)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventListsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req listMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.UpdateEventList(r.Context(), call, req.ID, req.Fields)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventListsController) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req listMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.RemoveEventList(r.Context(), call, req.ID)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventListsController) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req membershipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.AddEventToEventList(r.Context(), call, req.ListID, req.EventID, req.Position)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventListsController) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req membershipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.RemoveEventFromEventList(r.Context(), call, req.ListID, req.EventID)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventListsController) handleList(w http.ResponseWriter, r *http.Request) {
	lists, err := c.svc.GetAllEventLists()
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]any{"event_lists": lists})
}

func (c *EventListsController) handleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	include := q.Get("include_events") == "true"
	view, err := c.svc.GetEventList(q.Get("id"), include)
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, view)
}

func (c *EventListsController) handleHas(w http.ResponseWriter, r *http.Request) {
	ok, err := c.svc.HasEventList(r.URL.Query().Get("id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]bool{"has": ok})
}

func (c *EventListsController) handleByAccount(w http.ResponseWriter, r *http.Request) {
	lists, err := c.svc.GetAllEventListsByAccount(r.URL.Query().Get("account"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]any{"event_lists": lists})
}

func (c *EventListsController) handleContains(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ok, err := c.svc.IsEventInEventList(q.Get("list_id"), q.Get("event_id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]bool{"member": ok})
}

func (c *EventListsController) handlePosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pos, err := c.svc.GetEventPositionInEventList(q.Get("list_id"), q.Get("event_id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]int{"position": pos})
}

func (c *EventListsController) handleEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := c.svc.GetEventsInEventList(q.Get("list_id"), parseLimit(q.Get("limit")))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]any{"entries": entries})
}
