package scoring

import "github.com/dbv-club/championship-system/models"

const (
	regularTrackPoints   = 200
	advancedTrackPoints  = 300
	doctrinalTrackPoints = 200
	specialtyPointsEach  = 100

	// MaxSpecialties caps how many specialty badges score points.
	MaxSpecialties = 20
)

// ClassProgressPoints computes the fixed-formula contribution of a
// unit's class progress to its total. The specialty count is capped at
// MaxSpecialties; the cap is part of the ranking invariant.
func ClassProgressPoints(p *models.ClassProgress) int {
	if p == nil {
		return 0
	}
	total := 0
	if p.RegularDone {
		total += regularTrackPoints
	}
	if p.AdvancedDone {
		total += advancedTrackPoints
	}
	if p.DoctrinalUpToDate {
		total += doctrinalTrackPoints
	}
	count := p.SpecialtyCount
	if count > MaxSpecialties {
		count = MaxSpecialties
	}
	if count < 0 {
		count = 0
	}
	total += specialtyPointsEach * count
	return total
}

// ClampSpecialtyCount normalizes a raw specialty count into [0, MaxSpecialties].
// Out-of-range input is corrected, not rejected.
func ClampSpecialtyCount(count int) int {
	if count < 0 {
		return 0
	}
	if count > MaxSpecialties {
		return MaxSpecialties
	}
	return count
}
