package controllers

import (
	"net/http"

	"github.com/NEARFoundation/events-platform/internal/runtime"
)

// GeneralController handles health and service-level endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/stats", c.handleStats)
}

func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStats exposes the storage footprint and pricing so clients can size
// deposits before calling a payable endpoint.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"footprint_bytes": c.rt.Store().Footprint(),
		"price_per_byte":  c.rt.Engine().PricePerByte(),
	})
}
