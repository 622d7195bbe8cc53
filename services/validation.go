package services

import (
	"time"

	"github.com/dbv-club/championship-system/models"
)

// Registration window and track deadlines are fixed calendar dates within
// the championship's season year.
const (
	windowOpenMonth  = time.February
	windowOpenDay    = 1
	windowCloseMonth = time.November
	windowCloseDay   = 30

	regularDeadlineMonth  = time.June
	regularDeadlineDay    = 30
	advancedDeadlineMonth = time.September
	advancedDeadlineDay   = 30
)

// dateOnly truncates a timestamp to its calendar date. All window and
// deadline comparisons ignore time of day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// validateEventDate enforces the registration window of the championship's
// season and rejects future dates relative to now.
func validateEventDate(championship *models.Championship, date, now time.Time) error {
	d := dateOnly(date)
	open := time.Date(championship.Year, windowOpenMonth, windowOpenDay, 0, 0, 0, 0, time.UTC)
	closeAt := time.Date(championship.Year, windowCloseMonth, windowCloseDay, 0, 0, 0, 0, time.UTC)

	if d.Before(open) {
		return ErrDateBeforeWindow
	}
	if d.After(closeAt) {
		return ErrDateAfterWindow
	}
	if d.After(dateOnly(now)) {
		return ErrDateInFuture
	}
	return nil
}

// validateTrackDates checks that completion dates, when the corresponding
// track is marked done, do not exceed the fixed per-track deadlines.
func validateTrackDates(championship *models.Championship, regularDone bool, regularDate *time.Time, advancedDone bool, advancedDate *time.Time) error {
	if regularDone && regularDate != nil {
		deadline := time.Date(championship.Year, regularDeadlineMonth, regularDeadlineDay, 0, 0, 0, 0, time.UTC)
		if dateOnly(*regularDate).After(deadline) {
			return ErrRegularDeadlineExceeded
		}
	}
	if advancedDone && advancedDate != nil {
		deadline := time.Date(championship.Year, advancedDeadlineMonth, advancedDeadlineDay, 0, 0, 0, 0, time.UTC)
		if dateOnly(*advancedDate).After(deadline) {
			return ErrAdvancedDeadlineExceeded
		}
	}
	return nil
}
