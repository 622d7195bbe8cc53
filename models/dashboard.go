package models

import "time"

// LeaderboardRow is one line of the championship leaderboard.
type LeaderboardRow struct {
	Position    int    `json:"position"`
	UnitID      int    `json:"unit_id"`
	UnitName    string `json:"unit_name"`
	UnitColor   string `json:"unit_color"`
	TotalPoints int    `json:"total_points"`
}

// UnitDailyDetail groups everything recorded for a unit on one date.
type UnitDailyDetail struct {
	Date        time.Time    `json:"date"`
	Evaluations []Evaluation `json:"evaluations"`
	Demerits    []Demerit    `json:"demerits"`
	DayTotal    int          `json:"day_total"`
}

// HistoryPoint is the net point delta of a unit on one day.
type HistoryPoint struct {
	Date  time.Time `json:"date"`
	Delta int       `json:"delta"`
}

// YearlyPoint is one month of the cumulative point curve.
type YearlyPoint struct {
	Month      time.Time `json:"month"`
	Cumulative int       `json:"cumulative"`
}

// ChampionshipSummary is the executive view of a season.
type ChampionshipSummary struct {
	ChampionshipID   int             `json:"championship_id"`
	Units            int             `json:"units"`
	EvaluationsTotal int             `json:"evaluations_total"`
	DemeritsTotal    int             `json:"demerits_total"`
	PointsAwarded    int             `json:"points_awarded"`
	PointsLost       int             `json:"points_lost"`
	Leader           *LeaderboardRow `json:"leader,omitempty"`
	LastSyncedAt     *time.Time      `json:"last_synced_at,omitempty"`
}
