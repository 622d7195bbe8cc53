package models

import "time"

// DemeritTier is the severity band of an infraction, D1 (lightest)
// through D4 (most severe). The tier is encoded as the prefix of the
// demerit type name, e.g. "d3_desrespeito_lideranca".
type DemeritTier string

const (
	TierD1 DemeritTier = "D1"
	TierD2 DemeritTier = "D2"
	TierD3 DemeritTier = "D3"
	TierD4 DemeritTier = "D4"
)

// Demerit is a lost-points event. Points are always <= 0 and are a
// snapshot of the rule table at creation time, same as Evaluation.
type Demerit struct {
	ID             int         `json:"id" db:"id"`
	ChampionshipID int         `json:"championship_id" db:"championship_id"`
	UnitID         int         `json:"unit_id" db:"unit_id"`
	Date           time.Time   `json:"date" db:"date"`
	Type           string      `json:"type" db:"type"`
	Tier           DemeritTier `json:"tier" db:"tier"`
	Points         int         `json:"points" db:"points"`
	Description    *string     `json:"description,omitempty" db:"description"`
	CreatedBy      int         `json:"created_by" db:"created_by"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`

	Unit *Unit `json:"unit,omitempty" db:"-"`
}
