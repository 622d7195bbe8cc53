package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
	"github.com/dbv-club/championship-system/scoring"
)

type DemeritService interface {
	CreateDemerit(ctx context.Context, input CreateDemeritInput) (*models.Demerit, error)
	DeleteDemerit(ctx context.Context, id int) error
	ListDemeritTypes() []scoring.DemeritRule
}

type CreateDemeritInput struct {
	ChampionshipID int       `json:"championship_id"`
	UnitID         int       `json:"unit_id"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	Description    *string   `json:"description,omitempty"`
	ActorID        int       `json:"-"`
}

type demeritService struct {
	demeritRepo      repositories.DemeritRepository
	championshipRepo repositories.ChampionshipRepository
	rankingService   RankingService

	now func() time.Time
}

func NewDemeritService(
	demeritRepo repositories.DemeritRepository,
	championshipRepo repositories.ChampionshipRepository,
	rankingService RankingService,
) DemeritService {
	return &demeritService{
		demeritRepo:      demeritRepo,
		championshipRepo: championshipRepo,
		rankingService:   rankingService,
		now:              time.Now,
	}
}

func (s *demeritService) CreateDemerit(ctx context.Context, input CreateDemeritInput) (*models.Demerit, error) {
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

	rule, err := scoring.DemeritRuleFor(input.Type)
	if err != nil {
		return nil, ErrUnknownDemeritType
	}

	// Grave infractions must come with a written justification.
	if scoring.RequiresDescription(rule.Tier) {
		if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
			return nil, ErrDescriptionRequired
		}
	}

	demerit := &models.Demerit{
		ChampionshipID: input.ChampionshipID,
		UnitID:         input.UnitID,
		Date:           dateOnly(input.Date),
		Type:           rule.Type,
		Tier:           rule.Tier,
		Points:         rule.Points,
		Description:    input.Description,
		CreatedBy:      input.ActorID,
	}
	if err := s.demeritRepo.Create(ctx, demerit); err != nil {
		if errors.Is(err, repositories.ErrDemeritUnitInvalid) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to create demerit: %w", err)
	}

	if err := s.rankingService.Synchronize(ctx, input.ChampionshipID); err != nil {
		return demerit, fmt.Errorf("%w: %w", ErrRankingSyncFailed, err)
	}
	return demerit, nil
}

func (s *demeritService) DeleteDemerit(ctx context.Context, id int) error {
	demerit, err := s.demeritRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDemeritNotFound) {
			return ErrDemeritNotFound
		}
		return fmt.Errorf("failed to load demerit %d: %w", id, err)
	}

	if err := s.demeritRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrDemeritNotFound) {
			return ErrDemeritNotFound
		}
		return fmt.Errorf("failed to delete demerit %d: %w", id, err)
	}

	if err := s.rankingService.Synchronize(ctx, demerit.ChampionshipID); err != nil {
		return fmt.Errorf("%w: %w", ErrRankingSyncFailed, err)
	}
	return nil
}

func (s *demeritService) ListDemeritTypes() []scoring.DemeritRule {
	return scoring.DemeritTypes()
}
