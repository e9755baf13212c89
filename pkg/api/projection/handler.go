// Package projection exposes the engine over HTTP.
package projection

import (
	"encoding/json"
	"net/http"

	coreprojection "school_projection/pkg/core/projection"
	"school_projection/pkg/core/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate = validator.New()
	runRepo  = store.NewRunRepo()
)

// CalculateRequest wraps a full scenario. Persist asks the server to store
// the solved run when a database pool is available.
type CalculateRequest struct {
	VersionID string                `json:"version_id" validate:"omitempty,max=128"`
	Persist   bool                  `json:"persist"`
	Scenario  *coreprojection.Input `json:"scenario" validate:"required"`
}

// CalculateResponse is the solved projection plus the run ID assigned when
// the run was persisted.
type CalculateResponse struct {
	RunID  string                 `json:"run_id,omitempty"`
	Result *coreprojection.Result `json:"result"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: code, Message: msg})
}

// HandleCalculate runs the full projection for a posted scenario.
func HandleCalculate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := coreprojection.CalculateFullProjection(req.Scenario)
	if err != nil {
		switch {
		case coreprojection.IsValidation(err):
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case coreprojection.IsNotFound(err):
			writeError(w, http.StatusUnprocessableEntity, "HISTORICAL_DATA_NOT_FOUND", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		}
		return
	}

	resp := CalculateResponse{Result: res}
	if req.Persist && store.GetPool() != nil {
		runID := uuid.New()
		if err := runRepo.Save(r.Context(), runID, req.VersionID, res); err != nil {
			writeError(w, http.StatusInternalServerError, "PERSIST_FAILED", err.Error())
			return
		}
		resp.RunID = runID.String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleGetRun loads a previously persisted run by id (?id=<uuid>).
func HandleGetRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	if store.GetPool() == nil {
		writeError(w, http.StatusServiceUnavailable, "NO_DATABASE", "persistence is not configured")
		return
	}

	runID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid run id")
		return
	}
	res, err := runRepo.Load(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CalculateResponse{RunID: runID.String(), Result: res})
}
