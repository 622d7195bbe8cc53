package models

import "time"

// RankingEntry is the derived (total, rank) record for a unit in a
// championship. TotalPoints is always >= 0 and Position is the dense
// 1-based rank by total desc, unit id asc. Position 0 means the entry
// was bootstrapped but never synchronized.
type RankingEntry struct {
	ID             int       `json:"id" db:"id"`
	ChampionshipID int       `json:"championship_id" db:"championship_id"`
	UnitID         int       `json:"unit_id" db:"unit_id"`
	TotalPoints    int       `json:"total_points" db:"total_points"`
	Position       int       `json:"position" db:"position"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Populated on leaderboard reads, not mapped.
	Unit *Unit `json:"unit,omitempty" db:"-"`
}
