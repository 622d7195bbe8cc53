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

type EvaluationService interface {
	// CreateEvaluation validates, writes and synchronizes. On
	// ErrRankingSyncFailed the returned evaluation is committed and
	// valid; only the leaderboard is stale.
	CreateEvaluation(ctx context.Context, input CreateEvaluationInput) (*models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int) error
}

type CreateEvaluationInput struct {
	ChampionshipID int                    `json:"championship_id"`
	UnitID         int                    `json:"unit_id"`
	Date           time.Time              `json:"date"`
	Category       string                 `json:"category"`
	Subtype        string                 `json:"subtype"`
	Color          models.EvaluationColor `json:"color"`
	Note           *string                `json:"note,omitempty"`
	ActorID        int                    `json:"-"`
}

type evaluationService struct {
	evaluationRepo   repositories.EvaluationRepository
	championshipRepo repositories.ChampionshipRepository
	rankingService   RankingService

	now func() time.Time
}

func NewEvaluationService(
	evaluationRepo repositories.EvaluationRepository,
	championshipRepo repositories.ChampionshipRepository,
	rankingService RankingService,
) EvaluationService {
	return &evaluationService{
		evaluationRepo:   evaluationRepo,
		championshipRepo: championshipRepo,
		rankingService:   rankingService,
		now:              time.Now,
	}
}

func (s *evaluationService) CreateEvaluation(ctx context.Context, input CreateEvaluationInput) (*models.Evaluation, error) {
	championship, err := s.championshipRepo.GetByID(ctx, input.ChampionshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to load championship %d: %w", input.ChampionshipID, err)
	}
	if championship.Status != models.ChampionshipActive {
		return nil, ErrChampionshipNotActive
	}

	if err := validateEventDate(championship, input.Date, s.now()); err != nil {
		return nil, err
	}

	// The point value is a snapshot: resolved from the color table now,
	// stored on the row, never re-derived.
	points, err := scoring.ColorPoints(input.Color)
	if err != nil {
		return nil, ErrUnknownEvaluationColor
	}

	evaluation := &models.Evaluation{
		ChampionshipID: input.ChampionshipID,
		UnitID:         input.UnitID,
		Date:           dateOnly(input.Date),
		Category:       input.Category,
		Subtype:        input.Subtype,
		Color:          input.Color,
		Points:         points,
		Note:           input.Note,
		CreatedBy:      input.ActorID,
	}
	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		if errors.Is(err, repositories.ErrEvaluationUnitInvalid) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	if err := s.rankingService.Synchronize(ctx, input.ChampionshipID); err != nil {
		return evaluation, fmt.Errorf("%w: %w", ErrRankingSyncFailed, err)
	}
	return evaluation, nil
}

func (s *evaluationService) DeleteEvaluation(ctx context.Context, id int) error {
	evaluation, err := s.evaluationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return ErrEvaluationNotFound
		}
		return fmt.Errorf("failed to load evaluation %d: %w", id, err)
	}

	if err := s.evaluationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return ErrEvaluationNotFound
		}
		return fmt.Errorf("failed to delete evaluation %d: %w", id, err)
	}

	if err := s.rankingService.Synchronize(ctx, evaluation.ChampionshipID); err != nil {
		return fmt.Errorf("%w: %w", ErrRankingSyncFailed, err)
	}
	return nil
}
