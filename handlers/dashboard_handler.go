package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dbv-club/championship-system/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DailyDetailHandler handles GET /championships/{championshipID}/units/{unitID}/daily?date=YYYY-MM-DD
func (h *DashboardHandler) DailyDetailHandler(w http.ResponseWriter, r *http.Request) {
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

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		badRequestResponse(w, r, errors.New("date query parameter is required"))
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	detail, err := h.dashboardService.GetUnitDailyDetail(r.Context(), championshipID, unitID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"daily": detail}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HistoryHandler handles GET /championships/{championshipID}/units/{unitID}/history?days=30
func (h *DashboardHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
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

	windowDays := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			windowDays = days
		}
	}

	history, err := h.dashboardService.GetUnitHistory(r.Context(), championshipID, unitID, windowDays)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": history}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// YearlyHandler handles GET /championships/{championshipID}/units/{unitID}/yearly
func (h *DashboardHandler) YearlyHandler(w http.ResponseWriter, r *http.Request) {
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

	curve, err := h.dashboardService.GetUnitYearly(r.Context(), championshipID, unitID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"yearly": curve}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SummaryHandler handles GET /championships/{championshipID}/summary
func (h *DashboardHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
