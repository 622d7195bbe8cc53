package models

import "time"

// EvaluationColor is the graded outcome of an evaluation. Point values
// are resolved from the color once, at creation, and stored on the row.
type EvaluationColor string

const (
	ColorVerde    EvaluationColor = "verde"
	ColorAmarelo  EvaluationColor = "amarelo"
	ColorVermelho EvaluationColor = "vermelho"
)

// Evaluation is a positive-point behavioral event logged against a unit.
// Points are a snapshot taken at creation; they are never re-derived from
// the color after insert, so a later rule change does not rewrite history.
type Evaluation struct {
	ID             int             `json:"id" db:"id"`
	ChampionshipID int             `json:"championship_id" db:"championship_id"`
	UnitID         int             `json:"unit_id" db:"unit_id"`
	Date           time.Time       `json:"date" db:"date"`
	Category       string          `json:"category" db:"category"`
	Subtype        string          `json:"subtype" db:"subtype"`
	Color          EvaluationColor `json:"color" db:"color"`
	Points         int             `json:"points" db:"points"`
	Note           *string         `json:"note,omitempty" db:"note"`
	CreatedBy      int             `json:"created_by" db:"created_by"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`

	// Populated by services when the caller needs it, not mapped.
	Unit *Unit `json:"unit,omitempty" db:"-"`
}
