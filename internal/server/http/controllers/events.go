package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/NEARFoundation/events-platform/internal/auth"
	"github.com/NEARFoundation/events-platform/internal/entity"
	"github.com/NEARFoundation/events-platform/internal/mutation"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	eventsvc "github.com/NEARFoundation/events-platform/internal/services/events"
)

// EventsController handles all event HTTP endpoints.
type EventsController struct {
	rt       *runtime.Runtime
	svc      *eventsvc.Service
	verifier auth.Verifier
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, svc *eventsvc.Service, verifier auth.Verifier) *EventsController {
	return &EventsController{rt: rt, svc: svc, verifier: verifier}
}

// RegisterRoutes registers all event routes with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	// Payable mutations
	mux.HandleFunc("/v1/events/create", requireAuth(c.verifier, c.handleCreate))
	mux.HandleFunc("/v1/events/update", requireAuth(c.verifier, c.handleUpdate))
	mux.HandleFunc("/v1/events/remove", requireAuth(c.verifier, c.handleRemove))

	// Reads
	mux.HandleFunc("/v1/events", c.handleList)
	mux.HandleFunc("/v1/events/get", c.handleGet)
	mux.HandleFunc("/v1/events/has", c.handleHas)
	mux.HandleFunc("/v1/events/by-account", c.handleByAccount)
	mux.HandleFunc("/v1/events/latest", c.handleLatest)
}

type eventMutationReq struct {
	ID      string             `json:"id,omitempty"`
	Deposit uint64             `json:"deposit"`
	Fields  entity.EventFields `json:"fields"`
}

// settle runs the settlement follow-up and writes the mutation receipt.
func settle(w http.ResponseWriter, r *http.Request, rt *runtime.Runtime, p *mutation.Pending) {
	v, err := rt.Dispatcher().Settle(r.Context(), p)
	if err != nil {
		writeFault(w, err)
		return
	}
	resp := map[string]any{
		"value":       v,
		"cost":        p.Cost,
		"bytes_delta": p.BytesDelta,
	}
	if p.Refund != nil {
		resp["refund"] = p.Refund.Amount
	}
	writeJSON(w, resp)
}

func (c *EventsController) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req eventMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.CreateEvent(r.Context(), call, req.Fields)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventsController) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req eventMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.UpdateEvent(r.Context(), call, req.ID, req.Fields)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventsController) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req eventMutationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	call := mutation.Call{Caller: callerFrom(r.Context()), Attached: req.Deposit}
	p, err := c.svc.RemoveEvent(r.Context(), call, req.ID)
	if err != nil {
		writeFault(w, err)
		return
	}
	settle(w, r, c.rt, p)
}

func (c *EventsController) handleList(w http.ResponseWriter, r *http.Request) {
	events, err := c.svc.GetAllEvents(r.URL.Query().Get("filter"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]any{"events": events})
}

func (c *EventsController) handleGet(w http.ResponseWriter, r *http.Request) {
	ev, err := c.svc.GetEvent(r.URL.Query().Get("id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, ev)
}

func (c *EventsController) handleHas(w http.ResponseWriter, r *http.Request) {
	ok, err := c.svc.HasEvent(r.URL.Query().Get("id"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]bool{"has": ok})
}

func (c *EventsController) handleByAccount(w http.ResponseWriter, r *http.Request) {
	events, err := c.svc.GetAllEventsByAccount(r.URL.Query().Get("account"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, map[string]any{"events": events})
}

func (c *EventsController) handleLatest(w http.ResponseWriter, r *http.Request) {
	ev, err := c.svc.GetLatestEventByAccount(r.URL.Query().Get("account"))
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJSON(w, ev)
}
