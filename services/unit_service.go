package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dbv-club/championship-system/models"
	"github.com/dbv-club/championship-system/repositories"
	"github.com/dbv-club/championship-system/storage"
)

type UnitService interface {
	CreateUnit(ctx context.Context, input UnitInput) (*models.Unit, error)
	GetUnitByID(ctx context.Context, id int) (*models.Unit, error)
	ListActiveUnits(ctx context.Context) ([]models.Unit, error)
	UpdateUnit(ctx context.Context, id int, input UnitInput) (*models.Unit, error)
	UploadEmblem(ctx context.Context, id int, contentType string, file io.Reader) (*models.Unit, error)
}

type UnitInput struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

type unitService struct {
	unitRepo repositories.UnitRepository
	uploader storage.FileUploader
}

func NewUnitService(unitRepo repositories.UnitRepository, uploader storage.FileUploader) UnitService {
	return &unitService{unitRepo: unitRepo, uploader: uploader}
}

func (s *unitService) populateEmblemURL(unit *models.Unit) {
	if unit != nil && unit.EmblemKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*unit.EmblemKey)
		unit.EmblemURL = &url
	}
}

func (s *unitService) CreateUnit(ctx context.Context, input UnitInput) (*models.Unit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrUnitNameRequired
	}

	unit := &models.Unit{
		Name:   name,
		Color:  strings.TrimSpace(input.Color),
		Active: input.Active,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		if errors.Is(err, repositories.ErrUnitNameConflict) {
			return nil, ErrUnitNameConflict
		}
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

func (s *unitService) GetUnitByID(ctx context.Context, id int) (*models.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUnitNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit %d: %w", id, err)
	}
	s.populateEmblemURL(unit)
	return unit, nil
}

func (s *unitService) ListActiveUnits(ctx context.Context) ([]models.Unit, error) {
	units, err := s.unitRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	for i := range units {
		s.populateEmblemURL(&units[i])
	}
	return units, nil
}

func (s *unitService) UpdateUnit(ctx context.Context, id int, input UnitInput) (*models.Unit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrUnitNameRequired
	}

	unit := &models.Unit{
		ID:     id,
		Name:   name,
		Color:  strings.TrimSpace(input.Color),
		Active: input.Active,
	}
	err := s.unitRepo.Update(ctx, unit)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUnitNotFound):
			return nil, ErrUnitNotFound
		case errors.Is(err, repositories.ErrUnitNameConflict):
			return nil, ErrUnitNameConflict
		default:
			return nil, fmt.Errorf("failed to update unit %d: %w", id, err)
		}
	}
	return s.GetUnitByID(ctx, id)
}

func (s *unitService) UploadEmblem(ctx context.Context, id int, contentType string, file io.Reader) (*models.Unit, error) {
	unit, err := s.GetUnitByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, errors.New("file storage is not configured")
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	oldKey := unit.EmblemKey
	key := fmt.Sprintf("units/%d/emblem%s", id, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload emblem for unit %d: %w", id, err)
	}

	if err := s.unitRepo.UpdateEmblemKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist emblem key for unit %d: %w", id, err)
	}

	// Best effort: a stale old object is not worth failing the request.
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	unit.EmblemKey = &result.Key
	s.populateEmblemURL(unit)
	return unit, nil
}

// GetExtensionFromContentType maps an image content type to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported image content type: %q", contentType)
	}
}
