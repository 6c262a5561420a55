package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/pipeline"
	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db            *store.Database
	pipelineSvc   *pipeline.Service
	recordService *service.RecordService
}

// NewHandler creates a new handler.
func NewHandler(db *store.Database, pipelineSvc *pipeline.Service) *Handler {
	return &Handler{
		db:            db,
		pipelineSvc:   pipelineSvc,
		recordService: service.NewRecordService(db),
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "courtside",
	})
}

// TriggerRun starts a scrape run in the background.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var spec pipeline.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid run spec", err)
		return
	}

	runID, err := h.pipelineSvc.TriggerRun(r.Context(), spec)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			respondError(w, http.StatusConflict, "A run is already in progress", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to start run", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"run_id": runID,
		"status": string(pipeline.RunStatusQueued),
	})
}

// RunStatus reports the active run and recent history.
func (h *Handler) RunStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.pipelineSvc.Status(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch run status", err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// GetBoxScoresByDate returns all box scores for a game date.
func (h *Handler) GetBoxScoresByDate(w http.ResponseWriter, r *http.Request) {
	gameDate := r.URL.Query().Get("date")
	if gameDate == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'date' is required (YYYY-MM-DD)", nil)
		return
	}

	scores, err := h.recordService.GetBoxScoresByDate(r.Context(), gameDate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch box scores", err)
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

// GetPlayerBoxScores returns a player's recent box scores.
func (h *Handler) GetPlayerBoxScores(w http.ResponseWriter, r *http.Request) {
	playerName := mux.Vars(r)["playerName"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	scores, err := h.recordService.GetPlayerBoxScores(r.Context(), playerName, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player box scores", err)
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("⚠️  Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("⚠️  %s: %v", message, err)
	}
	respondJSON(w, code, map[string]string{"error": message})
}
