// Package settings serves the admin-controlled configuration block: global
// rates, the capacity cap and the transition-year overrides. State lives in
// the server process; clients splice it into scenarios they post to the
// projection endpoint.
package settings

import (
	"encoding/json"
	"net/http"
	"sync"

	"school_projection/pkg/core/projection"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Handler holds the current admin settings snapshot.
type Handler struct {
	mu         sync.RWMutex
	settings   projection.AdminSettings
	transition []projection.TransitionYearData
}

// NewHandler creates a handler seeded with defaults.
func NewHandler(defaults projection.AdminSettings, transition []projection.TransitionYearData) *Handler {
	return &Handler{settings: defaults, transition: transition}
}

type payload struct {
	Settings   projection.AdminSettings        `json:"settings"`
	Transition []projection.TransitionYearData `json:"transition" validate:"dive"`
}

// HandleSettings serves GET (current snapshot) and PUT (replace snapshot).
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	switch r.Method {
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		h.mu.RLock()
		body := payload{Settings: h.settings, Transition: h.transition}
		h.mu.RUnlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	case http.MethodPut:
		var body payload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.mu.Lock()
		h.settings = body.Settings
		h.transition = body.Transition
		h.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "use GET or PUT", http.StatusMethodNotAllowed)
	}
}

// Snapshot returns a copy of the current settings and transition overrides.
func (h *Handler) Snapshot() (projection.AdminSettings, []projection.TransitionYearData) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	transition := make([]projection.TransitionYearData, len(h.transition))
	copy(transition, h.transition)
	return h.settings, transition
}
