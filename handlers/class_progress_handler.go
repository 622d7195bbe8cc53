package handlers

import (
	"errors"
	"net/http"

	"github.com/dbv-club/championship-system/services"
)

type ClassProgressHandler struct {
	classProgressService services.ClassProgressService
}

func NewClassProgressHandler(classProgressService services.ClassProgressService) *ClassProgressHandler {
	return &ClassProgressHandler{classProgressService: classProgressService}
}

// GetHandler handles GET /championships/{championshipID}/units/{unitID}/class-progress
func (h *ClassProgressHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	unitID, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	progress, err := h.classProgressService.GetClassProgress(r.Context(), championshipID, unitID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"class_progress": progress}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpsertHandler handles PUT /championships/{championshipID}/units/{unitID}/class-progress
func (h *ClassProgressHandler) UpsertHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	unitID, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpsertClassProgressInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.ChampionshipID = championshipID
	input.UnitID = unitID

	progress, err := h.classProgressService.UpsertClassProgress(r.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrRankingSyncFailed) {
			response := jsonResponse{"class_progress": progress, "ranking_sync_error": err.Error()}
			if writeErr := writeJSON(w, http.StatusOK, response, nil); writeErr != nil {
				serverErrorResponse(w, r, writeErr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"class_progress": progress}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
