package handlers

import (
	"net/http"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/services"
)

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
}

func NewChampionshipHandler(championshipService services.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{championshipService: championshipService}
}

// CreateHandler handles POST /championships
func (h *ChampionshipHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.CreateChampionship(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /championships/{championshipID}
func (h *ChampionshipHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GetChampionshipByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /championships
func (h *ChampionshipHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	championships, err := h.championshipService.ListChampionships(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championships": championships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatusHandler handles PATCH /championships/{championshipID}/status
func (h *ChampionshipHandler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.ChampionshipStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
