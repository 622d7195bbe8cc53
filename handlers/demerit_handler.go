package handlers

import (
	"errors"
	"net/http"

	"github.com/dbv-club/championship-system/middleware"
	"github.com/dbv-club/championship-system/services"
)

type DemeritHandler struct {
	demeritService services.DemeritService
}

func NewDemeritHandler(demeritService services.DemeritService) *DemeritHandler {
	return &DemeritHandler{demeritService: demeritService}
}

// CreateHandler handles POST /championships/{championshipID}/demerits
func (h *DemeritHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to record a demerit")
		return
	}

	var input services.CreateDemeritInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.ChampionshipID = championshipID
	input.ActorID = actorID

	demerit, err := h.demeritService.CreateDemerit(r.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrRankingSyncFailed) {
			response := jsonResponse{"demerit": demerit, "ranking_sync_error": err.Error()}
			if writeErr := writeJSON(w, http.StatusCreated, response, nil); writeErr != nil {
				serverErrorResponse(w, r, writeErr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"demerit": demerit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /demerits/{demeritID}
func (h *DemeritHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "demeritID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.demeritService.DeleteDemerit(r.Context(), id); err != nil {
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

// ListTypesHandler handles GET /demerit-types
func (h *DemeritHandler) ListTypesHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"types": h.demeritService.ListDemeritTypes()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
