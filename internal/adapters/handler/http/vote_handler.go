package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	UnitID   uuid.UUID `json:"unit_id"`
	OptionID uuid.UUID `json:"option_id"`
}

// CastVote godoc
// @Summary      Casts or replaces a unit's vote on a poll
// @Description  The caller must be the responsible user of the unit, and the unit's building must match both the path building and the poll's building.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      403
// @Failure      404
// @Failure      422
// @Router       /buildings/{buildingID}/polls/{pollID}/vote [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	buildingID, err := uuid.Parse(chi.URLParam(r, "buildingID"))
	if err != nil {
		http.Error(w, "invalid building id", http.StatusBadRequest)
		return
	}
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

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CastVoteInput{
		BuildingID: buildingID,
		PollID:     pollID,
		UnitID:     req.UnitID,
		OptionID:   req.OptionID,
		VoterID:    userID,
	}

	result, err := h.service.CastVote(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrUnitNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrAccessDenied):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, domain.ErrBuildingMismatch), errors.Is(err, domain.ErrInvalidOption):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrPollNotActive):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
