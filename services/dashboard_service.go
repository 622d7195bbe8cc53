package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
)

// DashboardService builds the read-only projections. It never writes and
// carries no invariants of its own.
type DashboardService interface {
	GetUnitDailyDetail(ctx context.Context, championshipID, unitID int, date time.Time) (*models.UnitDailyDetail, error)
	GetUnitHistory(ctx context.Context, championshipID, unitID, windowDays int) ([]models.HistoryPoint, error)
	GetUnitYearly(ctx context.Context, championshipID, unitID int) ([]models.YearlyPoint, error)
	GetSummary(ctx context.Context, championshipID int) (*models.ChampionshipSummary, error)
}

type dashboardService struct {
	evaluationRepo   repositories.EvaluationRepository
	demeritRepo      repositories.DemeritRepository
	rankingRepo      repositories.RankingRepository
	championshipRepo repositories.ChampionshipRepository

	now func() time.Time
}

func NewDashboardService(
	evaluationRepo repositories.EvaluationRepository,
	demeritRepo repositories.DemeritRepository,
	rankingRepo repositories.RankingRepository,
	championshipRepo repositories.ChampionshipRepository,
) DashboardService {
	return &dashboardService{
		evaluationRepo:   evaluationRepo,
		demeritRepo:      demeritRepo,
		rankingRepo:      rankingRepo,
		championshipRepo: championshipRepo,
		now:              time.Now,
	}
}

func (s *dashboardService) GetUnitDailyDetail(ctx context.Context, championshipID, unitID int, date time.Time) (*models.UnitDailyDetail, error) {
	day := dateOnly(date)
	evaluations, err := s.evaluationRepo.ListByUnitAndDate(ctx, championshipID, unitID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for c:%d u:%d: %w", championshipID, unitID, err)
	}
	demerits, err := s.demeritRepo.ListByUnitAndDate(ctx, championshipID, unitID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list demerits for c:%d u:%d: %w", championshipID, unitID, err)
	}

	detail := &models.UnitDailyDetail{
		Date:        day,
		Evaluations: evaluations,
		Demerits:    demerits,
	}
	for _, e := range evaluations {
		detail.DayTotal += e.Points
	}
	for _, d := range demerits {
		detail.DayTotal += d.Points
	}
	return detail, nil
}

func (s *dashboardService) GetUnitHistory(ctx context.Context, championshipID, unitID, windowDays int) ([]models.HistoryPoint, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	from := dateOnly(s.now()).AddDate(0, 0, -windowDays)

	evaluations, err := s.evaluationRepo.ListByUnitSince(ctx, championshipID, unitID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for c:%d u:%d: %w", championshipID, unitID, err)
	}
	demerits, err := s.demeritRepo.ListByUnitSince(ctx, championshipID, unitID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list demerits for c:%d u:%d: %w", championshipID, unitID, err)
	}

	deltas := make(map[time.Time]int)
	for _, e := range evaluations {
		deltas[dateOnly(e.Date)] += e.Points
	}
	for _, d := range demerits {
		deltas[dateOnly(d.Date)] += d.Points
	}

	history := make([]models.HistoryPoint, 0, len(deltas))
	for day, delta := range deltas {
		history = append(history, models.HistoryPoint{Date: day, Delta: delta})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	return history, nil
}

func (s *dashboardService) GetUnitYearly(ctx context.Context, championshipID, unitID int) ([]models.YearlyPoint, error) {
	championship, err := s.championshipRepo.GetByID(ctx, championshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	yearStart := time.Date(championship.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	evaluations, err := s.evaluationRepo.ListByUnitSince(ctx, championshipID, unitID, yearStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for c:%d u:%d: %w", championshipID, unitID, err)
	}
	demerits, err := s.demeritRepo.ListByUnitSince(ctx, championshipID, unitID, yearStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list demerits for c:%d u:%d: %w", championshipID, unitID, err)
	}

	monthly := make(map[time.Month]int)
	for _, e := range evaluations {
		monthly[e.Date.Month()] += e.Points
	}
	for _, d := range demerits {
		monthly[d.Date.Month()] += d.Points
	}

	curve := make([]models.YearlyPoint, 0, 12)
	cumulative := 0
	for month := time.January; month <= time.December; month++ {
		cumulative += monthly[month]
		curve = append(curve, models.YearlyPoint{
			Month:      time.Date(championship.Year, month, 1, 0, 0, 0, 0, time.UTC),
			Cumulative: cumulative,
		})
	}
	return curve, nil
}

func (s *dashboardService) GetSummary(ctx context.Context, championshipID int) (*models.ChampionshipSummary, error) {
	evaluations, err := s.evaluationRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for championship %d: %w", championshipID, err)
	}
	demerits, err := s.demeritRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list demerits for championship %d: %w", championshipID, err)
	}
	board, err := s.rankingRepo.ListLeaderboard(ctx, nil, championshipID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard for championship %d: %w", championshipID, err)
	}
	lastSynced, err := s.rankingRepo.LastSyncedAt(ctx, nil, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time for championship %d: %w", championshipID, err)
	}

	summary := &models.ChampionshipSummary{
		ChampionshipID:   championshipID,
		Units:            len(board),
		EvaluationsTotal: len(evaluations),
		DemeritsTotal:    len(demerits),
		LastSyncedAt:     lastSynced,
	}
	for _, e := range evaluations {
		summary.PointsAwarded += e.Points
	}
	for _, d := range demerits {
		summary.PointsLost += d.Points
	}
	if len(board) > 0 {
		leader := board[0]
		summary.Leader = &leader
	}
	return summary, nil
}
