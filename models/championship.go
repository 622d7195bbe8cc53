package models

import "time"

// ChampionshipStatus mirrors the ENUM in the database.
type ChampionshipStatus string

const (
	ChampionshipActive    ChampionshipStatus = "active"
	ChampionshipClosed    ChampionshipStatus = "closed"
	ChampionshipSuspended ChampionshipStatus = "suspended"
)

// Championship is a scored season. Exactly one is expected to be active
// at a time; that invariant is managed by the admin flows, not enforced here.
type Championship struct {
	ID        int                `json:"id" db:"id"`
	Name      string             `json:"name" db:"name"`
	Year      int                `json:"year" db:"year"`
	Status    ChampionshipStatus `json:"status" db:"status"`
	StartDate time.Time          `json:"start_date" db:"start_date"`
	EndDate   time.Time          `json:"end_date" db:"end_date"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}
