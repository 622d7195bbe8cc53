package handlers

import (
	"net/http"

	"github.com/dbv-club/championship-system/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// LeaderboardHandler handles GET /championships/{championshipID}/leaderboard?name=
func (h *RankingHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	nameFilter := r.URL.Query().Get("name")

	board, err := h.rankingService.GetLeaderboard(r.Context(), championshipID, nameFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BootstrapHandler handles POST /championships/{championshipID}/bootstrap
func (h *RankingHandler) BootstrapHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.rankingService.InitializeChampionship(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Partial failures travel inside the report, not as an HTTP error.
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SynchronizeHandler handles POST /championships/{championshipID}/synchronize
// Manual resync for operators after a reported sync failure.
func (h *RankingHandler) SynchronizeHandler(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rankingService.Synchronize(r.Context(), championshipID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"synchronized": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
