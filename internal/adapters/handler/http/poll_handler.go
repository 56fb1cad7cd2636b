package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	access  ports.AccessControl
}

func NewPollHandler(service ports.PollService, access ports.AccessControl) *PollHandler {
	return &PollHandler{
		service: service,
		access:  access,
	}
}

type createPollRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Options     []string  `json:"options"`
}

// CreatePoll godoc
// @Summary      Creates a poll for a building
// @Description  Only the building's manager may create polls. The poll and its options are stored atomically.
// @Tags         polls
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      403
// @Router       /buildings/{buildingID}/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	buildingID, err := uuid.Parse(chi.URLParam(r, "buildingID"))
	if err != nil {
		http.Error(w, "invalid building id", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	// Explicit guard before any state mutation. A denial here is
	// reported as 403, distinct from a 404 on the poll routes.
	if !h.access.HasManagementRights(r.Context(), buildingID, userID) {
		http.Error(w, domain.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreatePollInput{
		BuildingID:  buildingID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Options:     req.Options,
		CreatedBy:   userID,
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(poll); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// ListPolls godoc
// @Summary      Lists a building's polls
// @Description  Filter with type=ALL|ACTIVE|HISTORY (default ALL). Requires membership of the building.
// @Tags         polls
// @Success      200
// @Failure      403
// @Router       /buildings/{buildingID}/polls [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	buildingID, err := uuid.Parse(chi.URLParam(r, "buildingID"))
	if err != nil {
		http.Error(w, "invalid building id", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	if !h.access.HasMembership(r.Context(), buildingID, userID) {
		http.Error(w, domain.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	filter := ports.ParsePollFilter(r.URL.Query().Get("type"))

	polls, err := h.service.List(r.Context(), buildingID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(polls); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetPoll returns a single poll with per-option vote counts and the
// caller's own selected option, if any.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uuid.Parse(chi.URLParam(r, "pollID"))
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	results, err := h.service.GetResults(r.Context(), pollID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !h.access.HasMembership(r.Context(), results.Poll.BuildingID, userID) {
		http.Error(w, domain.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
