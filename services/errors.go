package services

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation / business rules
	ErrValidationFailed         = errors.New("validation failed")
	ErrDateBeforeWindow         = errors.New("date is before the registration window opens")
	ErrDateAfterWindow          = errors.New("date is after the registration window closes")
	ErrDateInFuture             = errors.New("date must not be in the future")
	ErrDescriptionRequired      = errors.New("description required for D3/D4")
	ErrRegularDeadlineExceeded  = errors.New("regular track completion date exceeds the track deadline")
	ErrAdvancedDeadlineExceeded = errors.New("advanced track completion date exceeds the track deadline")
	ErrUnknownEvaluationColor   = errors.New("unknown evaluation color")
	ErrUnknownDemeritType       = errors.New("unknown demerit type")
	ErrChampionshipNotActive    = errors.New("championship is not active")

	// Conflicts
	ErrChampionshipNameConflict = errors.New("championship name already exists for this year")
	ErrUnitNameConflict         = errors.New("unit name already in use")
	ErrUserEmailConflict        = errors.New("email address is already in use")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort       = errors.New("password is too short")

	// Entity-specific not-found (more context than the generic ErrNotFound)
	ErrChampionshipNotFound = errors.New("championship not found")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrDemeritNotFound      = errors.New("demerit not found")
	ErrUserNotFound         = errors.New("user not found")

	// Championship lifecycle
	ErrChampionshipNameRequired        = errors.New("championship name is required")
	ErrChampionshipInvalidDateRange    = errors.New("championship end date must be after start date")
	ErrChampionshipInvalidStatus       = errors.New("invalid championship status provided")
	ErrChampionshipInvalidStatusChange = errors.New("invalid championship status transition")
	ErrUnitNameRequired                = errors.New("unit name is required")

	// Ranking
	ErrRankingNotInitialized = errors.New("championship ranking not initialized, run bootstrap first")
	// ErrRankingSyncFailed marks a mutation that committed but whose
	// trailing synchronization did not. The written event is kept; the
	// leaderboard is stale until the next successful sync.
	ErrRankingSyncFailed = errors.New("event saved, but ranking synchronization failed")
)

// UnitSyncFailure records one unit whose ranking row could not be persisted.
type UnitSyncFailure struct {
	UnitID int
	Err    error
}

// SyncError aggregates per-unit persistence failures of one synchronizer
// run. The run as a whole is considered failed; callers should treat the
// leaderboard as stale.
type SyncError struct {
	ChampionshipID int
	Failures       []UnitSyncFailure
}

func (e *SyncError) Error() string {
	units := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		units[i] = fmt.Sprintf("%d", f.UnitID)
	}
	return fmt.Sprintf("ranking sync for championship %d failed for units [%s]", e.ChampionshipID, strings.Join(units, ", "))
}

func (e *SyncError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
