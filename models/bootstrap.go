package models

// BootstrapReport summarizes one run of the championship initializer.
type BootstrapReport struct {
	ChampionshipID     int      `json:"championship_id"`
	UnitsConsidered    int      `json:"units_considered"`
	RankingRowsCreated int      `json:"ranking_rows_created"`
	ClassRowsCreated   int      `json:"class_rows_created"`
	Errors             []string `json:"errors"`
}
