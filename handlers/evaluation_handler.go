package handlers

import (
	"errors"
	"net/http"

	"github.com/dbv-club/championship-system/middleware"
	"github.com/dbv-club/championship-system/services"
)

type EvaluationHandler struct {
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// CreateHandler handles POST /championships/{championshipID}/evaluations
func (h *EvaluationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to record an evaluation")
		return
	}

	var input services.CreateEvaluationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.ChampionshipID = championshipID
	input.ActorID = actorID

	evaluation, err := h.evaluationService.CreateEvaluation(r.Context(), input)
	if err != nil {
		// The event is committed even when the trailing sync fails; the
		// caller has to learn about both outcomes.
		if errors.Is(err, services.ErrRankingSyncFailed) {
			response := jsonResponse{"evaluation": evaluation, "ranking_sync_error": err.Error()}
			if writeErr := writeJSON(w, http.StatusCreated, response, nil); writeErr != nil {
				serverErrorResponse(w, r, writeErr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"evaluation": evaluation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /evaluations/{evaluationID}
func (h *EvaluationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "evaluationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.evaluationService.DeleteEvaluation(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrRankingSyncFailed) {
			response := jsonResponse{"deleted": true, "ranking_sync_error": err.Error()}
			if writeErr := writeJSON(w, http.StatusOK, response, nil); writeErr != nil {
				serverErrorResponse(w, r, writeErr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
