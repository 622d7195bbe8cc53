package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
	"github.com/dbv-club/championship-system/scoring"
	"golang.org/x/sync/errgroup"
)

// LeaderboardCache is the optional read-side accelerator for the
// leaderboard. A nil cache disables caching; the service then serves
// every read from Postgres.
type LeaderboardCache interface {
	Rebuild(ctx context.Context, championshipID int, rows []models.LeaderboardRow) error
	Get(ctx context.Context, championshipID int) ([]models.LeaderboardRow, error)
	Invalidate(ctx context.Context, championshipID int) error
}

type RankingService interface {
	// Synchronize recomputes total and position for every ranking entry
	// of the championship from the raw event streams.
	Synchronize(ctx context.Context, championshipID int) error
	InitializeChampionship(ctx context.Context, championshipID int) (*models.BootstrapReport, error)
	GetLeaderboard(ctx context.Context, championshipID int, nameFilter string) ([]models.LeaderboardRow, error)
}

type rankingService struct {
	rankingRepo       repositories.RankingRepository
	evaluationRepo    repositories.EvaluationRepository
	demeritRepo       repositories.DemeritRepository
	classProgressRepo repositories.ClassProgressRepository
	unitRepo          repositories.UnitRepository
	championshipRepo  repositories.ChampionshipRepository
	cache             LeaderboardCache
	logger            *slog.Logger

	// Concurrent syncs of the same championship would race on the
	// read-then-write of every entry, so runs are serialized per
	// championship.
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewRankingService(
	rankingRepo repositories.RankingRepository,
	evaluationRepo repositories.EvaluationRepository,
	demeritRepo repositories.DemeritRepository,
	classProgressRepo repositories.ClassProgressRepository,
	unitRepo repositories.UnitRepository,
	championshipRepo repositories.ChampionshipRepository,
	cache LeaderboardCache,
	logger *slog.Logger,
) RankingService {
	return &rankingService{
		rankingRepo:       rankingRepo,
		evaluationRepo:    evaluationRepo,
		demeritRepo:       demeritRepo,
		classProgressRepo: classProgressRepo,
		unitRepo:          unitRepo,
		championshipRepo:  championshipRepo,
		cache:             cache,
		logger:            logger,
		locks:             make(map[int]*sync.Mutex),
	}
}

func (s *rankingService) championshipLock(championshipID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[championshipID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[championshipID] = lock
	}
	return lock
}

func (s *rankingService) Synchronize(ctx context.Context, championshipID int) error {
	lock := s.championshipLock(championshipID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.rankingRepo.ListByChampionship(ctx, nil, championshipID)
	if err != nil {
		return fmt.Errorf("failed to list ranking entries for championship %d: %w", championshipID, err)
	}
	if len(entries) == 0 {
		return ErrRankingNotInitialized
	}

	// Three bulk reads, one per event stream. O(totalEvents), never
	// O(units x events).
	var (
		evaluations []models.Evaluation
		demerits    []models.Demerit
		progress    []models.ClassProgress
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var errRead error
		evaluations, errRead = s.evaluationRepo.ListByChampionship(gCtx, championshipID)
		return errRead
	})
	g.Go(func() error {
		var errRead error
		demerits, errRead = s.demeritRepo.ListByChampionship(gCtx, championshipID)
		return errRead
	})
	g.Go(func() error {
		var errRead error
		progress, errRead = s.classProgressRepo.ListByChampionship(gCtx, championshipID)
		return errRead
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to read event streams for championship %d: %w", championshipID, err)
	}

	evalSums := make(map[int]int)
	for _, e := range evaluations {
		evalSums[e.UnitID] += e.Points
	}
	demeritSums := make(map[int]int)
	for _, d := range demerits {
		demeritSums[d.UnitID] += d.Points
	}
	classPoints := make(map[int]int)
	for i := range progress {
		classPoints[progress[i].UnitID] = scoring.ClassProgressPoints(&progress[i])
	}

	// Every bootstrapped unit gets a total, even with zero events.
	totals := make(map[int]int, len(entries))
	for _, entry := range entries {
		total := evalSums[entry.UnitID] + demeritSums[entry.UnitID] + classPoints[entry.UnitID]
		if total < 0 {
			total = 0
		}
		totals[entry.UnitID] = total
	}

	ranked := scoring.Rank(totals)

	var failures []UnitSyncFailure
	for _, ru := range ranked {
		if err := s.rankingRepo.UpdateScore(ctx, nil, championshipID, ru.UnitID, ru.Total, ru.Position); err != nil {
			failures = append(failures, UnitSyncFailure{UnitID: ru.UnitID, Err: err})
		}
	}
	if len(failures) > 0 {
		return &SyncError{ChampionshipID: championshipID, Failures: failures}
	}

	s.refreshCache(ctx, championshipID)
	return nil
}

// refreshCache rewrites the cached leaderboard after a successful sync.
// Cache trouble never fails the sync; the DB remains authoritative.
func (s *rankingService) refreshCache(ctx context.Context, championshipID int) {
	if s.cache == nil {
		return
	}
	rows, err := s.rankingRepo.ListLeaderboard(ctx, nil, championshipID, "")
	if err != nil {
		s.logger.Warn("leaderboard cache refresh: read failed", slog.Int("championship_id", championshipID), slog.Any("error", err))
		return
	}
	if err := s.cache.Rebuild(ctx, championshipID, rows); err != nil {
		s.logger.Warn("leaderboard cache refresh failed", slog.Int("championship_id", championshipID), slog.Any("error", err))
	}
}

func (s *rankingService) InitializeChampionship(ctx context.Context, championshipID int) (*models.BootstrapReport, error) {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", championshipID, err)
	}

	units, err := s.unitRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active units: %w", err)
	}

	report := &models.BootstrapReport{
		ChampionshipID:  championshipID,
		UnitsConsidered: len(units),
		Errors:          []string{},
	}

	rankingRows := make([]*models.RankingEntry, 0, len(units))
	classRows := make([]*models.ClassProgress, 0, len(units))
	for _, u := range units {
		rankingRows = append(rankingRows, &models.RankingEntry{
			ChampionshipID: championshipID,
			UnitID:         u.ID,
		})
		classRows = append(classRows, &models.ClassProgress{
			ChampionshipID: championshipID,
			UnitID:         u.ID,
		})
	}

	// The two row kinds are independent: a failure in one batch must not
	// block the other, nor the trailing sync over whatever was created.
	created, err := s.rankingRepo.BatchCreate(ctx, nil, rankingRows)
	report.RankingRowsCreated = created
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("ranking rows: %v", err))
	}

	created, err = s.classProgressRepo.BatchCreate(ctx, classRows)
	report.ClassRowsCreated = created
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("class progress rows: %v", err))
	}

	// Unconditional: covers units that already had non-zero class
	// progress before this run.
	if err := s.Synchronize(ctx, championshipID); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("synchronize: %v", err))
	}

	s.logger.Info("championship bootstrap finished",
		slog.Int("championship_id", championshipID),
		slog.Int("units_considered", report.UnitsConsidered),
		slog.Int("ranking_rows_created", report.RankingRowsCreated),
		slog.Int("class_rows_created", report.ClassRowsCreated),
		slog.Int("errors", len(report.Errors)),
	)
	return report, nil
}

func (s *rankingService) GetLeaderboard(ctx context.Context, championshipID int, nameFilter string) ([]models.LeaderboardRow, error) {
	// Filtered reads always hit the DB; only the full board is cached.
	if nameFilter == "" && s.cache != nil {
		rows, err := s.cache.Get(ctx, championshipID)
		if err == nil && rows != nil {
			return rows, nil
		}
		if err != nil {
			s.logger.Warn("leaderboard cache read failed, falling back to db",
				slog.Int("championship_id", championshipID), slog.Any("error", err))
		}
	}

	rows, err := s.rankingRepo.ListLeaderboard(ctx, nil, championshipID, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard for championship %d: %w", championshipID, err)
	}
	return rows, nil
}
