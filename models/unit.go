package models

import "time"

// Unit is a competing sub-group (unidade) of the club.
type Unit struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Active    bool      `json:"active" db:"active"`
	EmblemKey *string   `json:"-" db:"emblem_key"`
	EmblemURL *string   `json:"emblem_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
