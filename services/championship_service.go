package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
)

type ChampionshipService interface {
	CreateChampionship(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error)
	GetChampionshipByID(ctx context.Context, id int) (*models.Championship, error)
	ListChampionships(ctx context.Context) ([]models.Championship, error)
	UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) (*models.Championship, error)
}

type CreateChampionshipInput struct {
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type championshipService struct {
	championshipRepo repositories.ChampionshipRepository
}

func NewChampionshipService(championshipRepo repositories.ChampionshipRepository) ChampionshipService {
	return &championshipService{championshipRepo: championshipRepo}
}

func (s *championshipService) CreateChampionship(ctx context.Context, input CreateChampionshipInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrChampionshipNameRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrChampionshipInvalidDateRange
	}
	year := input.Year
	if year == 0 {
		year = input.StartDate.Year()
	}

	championship := &models.Championship{
		Name:      name,
		Year:      year,
		Status:    models.ChampionshipActive,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.championshipRepo.Create(ctx, championship); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNameConflict) {
			return nil, ErrChampionshipNameConflict
		}
		return nil, fmt.Errorf("failed to create championship: %w", err)
	}
	return championship, nil
}

func (s *championshipService) GetChampionshipByID(ctx context.Context, id int) (*models.Championship, error) {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to get championship %d: %w", id, err)
	}
	return championship, nil
}

func (s *championshipService) ListChampionships(ctx context.Context) ([]models.Championship, error) {
	championships, err := s.championshipRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	return championships, nil
}

// validStatusTransitions encodes the season lifecycle. Closed is terminal.
var validStatusTransitions = map[models.ChampionshipStatus][]models.ChampionshipStatus{
	models.ChampionshipActive:    {models.ChampionshipSuspended, models.ChampionshipClosed},
	models.ChampionshipSuspended: {models.ChampionshipActive, models.ChampionshipClosed},
	models.ChampionshipClosed:    {},
}

func (s *championshipService) UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) (*models.Championship, error) {
	switch status {
	case models.ChampionshipActive, models.ChampionshipClosed, models.ChampionshipSuspended:
	default:
		return nil, ErrChampionshipInvalidStatus
	}

	championship, err := s.GetChampionshipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validStatusTransitions[championship.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrChampionshipInvalidStatusChange, championship.Status, status)
	}

	if err := s.championshipRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to update championship %d status: %w", id, err)
	}
	championship.Status = status
	return championship, nil
}
