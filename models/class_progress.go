package models

import "time"

// ClassProgress (acompanhamento de classes) tracks formation-track
// completion for one unit within one championship. Exactly one row per
// (championship, unit); rows are created by the bootstrap or vivified
// lazily with zero values, and are never deleted.
type ClassProgress struct {
	ID                int        `json:"id" db:"id"`
	ChampionshipID    int        `json:"championship_id" db:"championship_id"`
	UnitID            int        `json:"unit_id" db:"unit_id"`
	RegularDone       bool       `json:"regular_done" db:"regular_done"`
	RegularDate       *time.Time `json:"regular_date,omitempty" db:"regular_date"`
	AdvancedDone      bool       `json:"advanced_done" db:"advanced_done"`
	AdvancedDate      *time.Time `json:"advanced_date,omitempty" db:"advanced_date"`
	DoctrinalUpToDate bool       `json:"doctrinal_up_to_date" db:"doctrinal_up_to_date"`
	SpecialtyCount    int        `json:"specialty_count" db:"specialty_count"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
