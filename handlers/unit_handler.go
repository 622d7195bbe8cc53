package handlers

import (
	"errors"
	"net/http"

	"github.com/dbv-club/championship-system/services"
)

const maxEmblemSize = 5 << 20 // 5MB

type UnitHandler struct {
	unitService services.UnitService
}

func NewUnitHandler(unitService services.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// CreateHandler handles POST /units
func (h *UnitHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.UnitInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	unit, err := h.unitService.CreateUnit(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /units/{unitID}
func (h *UnitHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	unit, err := h.unitService.GetUnitByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /units
func (h *UnitHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitService.ListActiveUnits(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"units": units}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /units/{unitID}
func (h *UnitHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UnitInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	unit, err := h.unitService.UpdateUnit(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadEmblemHandler handles PUT /units/{unitID}/emblem (multipart form, field "emblem")
func (h *UnitHandler) UploadEmblemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "unitID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxEmblemSize); err != nil {
		badRequestResponse(w, r, errors.New("could not parse multipart form"))
		return
	}
	file, header, err := r.FormFile("emblem")
	if err != nil {
		badRequestResponse(w, r, errors.New("emblem file is required"))
		return
	}
	defer file.Close()

	unit, err := h.unitService.UploadEmblem(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"unit": unit}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
