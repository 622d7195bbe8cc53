package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
	"github.com/dbv-club/championship-system/scoring"
)

type ClassProgressService interface {
	GetClassProgress(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error)
	UpsertClassProgress(ctx context.Context, input UpsertClassProgressInput) (*models.ClassProgress, error)
}

type UpsertClassProgressInput struct {
	ChampionshipID    int        `json:"championship_id"`
	UnitID            int        `json:"unit_id"`
	RegularDone       bool       `json:"regular_done"`
	RegularDate       *time.Time `json:"regular_date,omitempty"`
	AdvancedDone      bool       `json:"advanced_done"`
	AdvancedDate      *time.Time `json:"advanced_date,omitempty"`
	DoctrinalUpToDate bool       `json:"doctrinal_up_to_date"`
	SpecialtyCount    int        `json:"specialty_count"`
}

type classProgressService struct {
	classProgressRepo repositories.ClassProgressRepository
	championshipRepo  repositories.ChampionshipRepository
	rankingService    RankingService
}

func NewClassProgressService(
	classProgressRepo repositories.ClassProgressRepository,
	championshipRepo repositories.ChampionshipRepository,
	rankingService RankingService,
) ClassProgressService {
	return &classProgressService{
		classProgressRepo: classProgressRepo,
		championshipRepo:  championshipRepo,
		rankingService:    rankingService,
	}
}

// GetClassProgress vivifies a zero-valued row on first read, so forms
// always have something to render.
func (s *classProgressService) GetClassProgress(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error) {
	progress, err := s.classProgressRepo.GetOrCreate(ctx, championshipID, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class progress for c:%d u:%d: %w", championshipID, unitID, err)
	}
	return progress, nil
}

func (s *classProgressService) UpsertClassProgress(ctx context.Context, input UpsertClassProgressInput) (*models.ClassProgress, error) {
	championship, err := s.championshipRepo.GetByID(ctx, input.ChampionshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", input.ChampionshipID, err)
	}

	if err := validateTrackDates(championship, input.RegularDone, input.RegularDate, input.AdvancedDone, input.AdvancedDate); err != nil {
		return nil, err
	}

	progress := &models.ClassProgress{
		ChampionshipID:    input.ChampionshipID,
		UnitID:            input.UnitID,
		RegularDone:       input.RegularDone,
		RegularDate:       input.RegularDate,
		AdvancedDone:      input.AdvancedDone,
		AdvancedDate:      input.AdvancedDate,
		DoctrinalUpToDate: input.DoctrinalUpToDate,
		// Out-of-range counts are corrected, not rejected.
		SpecialtyCount: scoring.ClampSpecialtyCount(input.SpecialtyCount),
	}
	if err := s.classProgressRepo.Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to upsert class progress for c:%d u:%d: %w", input.ChampionshipID, input.UnitID, err)
	}

	if err := s.rankingService.Synchronize(ctx, input.ChampionshipID); err != nil {
		return progress, fmt.Errorf("%w: %w", ErrRankingSyncFailed, err)
	}
	return progress, nil
}
