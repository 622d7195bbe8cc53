package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dbv-club/championship-system/models"
)

var ErrClassProgressNotFound = errors.New("class progress not found")

type ClassProgressRepository interface {
	GetByChampionshipAndUnit(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error)
	// GetOrCreate vivifies a zero-valued row on first read.
	GetOrCreate(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error)
	Upsert(ctx context.Context, progress *models.ClassProgress) error
	// BatchCreate inserts zero-valued rows for units that have none yet
	// and reports how many were actually created.
	BatchCreate(ctx context.Context, progress []*models.ClassProgress) (int, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]models.ClassProgress, error)
}

type postgresClassProgressRepository struct {
	db *sql.DB
}

func NewPostgresClassProgressRepository(db *sql.DB) ClassProgressRepository {
	return &postgresClassProgressRepository{db: db}
}

const classProgressColumns = `id, championship_id, unit_id, regular_done, regular_date, advanced_done, advanced_date, doctrinal_up_to_date, specialty_count, updated_at`

func (r *postgresClassProgressRepository) scanProgress(rowScanner interface{ Scan(...interface{}) error }) (*models.ClassProgress, error) {
	var p models.ClassProgress
	err := rowScanner.Scan(
		&p.ID, &p.ChampionshipID, &p.UnitID, &p.RegularDone, &p.RegularDate,
		&p.AdvancedDone, &p.AdvancedDate, &p.DoctrinalUpToDate, &p.SpecialtyCount, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassProgressNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresClassProgressRepository) GetByChampionshipAndUnit(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error) {
	query := `SELECT ` + classProgressColumns + ` FROM class_progress
		WHERE championship_id = $1 AND unit_id = $2`
	return r.scanProgress(r.db.QueryRowContext(ctx, query, championshipID, unitID))
}

func (r *postgresClassProgressRepository) GetOrCreate(ctx context.Context, championshipID, unitID int) (*models.ClassProgress, error) {
	progress, err := r.GetByChampionshipAndUnit(ctx, championshipID, unitID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, ErrClassProgressNotFound) {
		return nil, fmt.Errorf("failed to get class progress for c:%d u:%d: %w", championshipID, unitID, err)
	}
	fresh := &models.ClassProgress{
		ChampionshipID: championshipID,
		UnitID:         unitID,
		UpdatedAt:      time.Now(),
	}
	if upsertErr := r.Upsert(ctx, fresh); upsertErr != nil {
		return nil, fmt.Errorf("failed to vivify class progress for c:%d u:%d: %w", championshipID, unitID, upsertErr)
	}
	return fresh, nil
}

func (r *postgresClassProgressRepository) Upsert(ctx context.Context, p *models.ClassProgress) error {
	query := `
		INSERT INTO class_progress
		    (championship_id, unit_id, regular_done, regular_date, advanced_done, advanced_date, doctrinal_up_to_date, specialty_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (championship_id, unit_id) DO UPDATE SET
		    regular_done = EXCLUDED.regular_done,
		    regular_date = EXCLUDED.regular_date,
		    advanced_done = EXCLUDED.advanced_done,
		    advanced_date = EXCLUDED.advanced_date,
		    doctrinal_up_to_date = EXCLUDED.doctrinal_up_to_date,
		    specialty_count = EXCLUDED.specialty_count,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`
	p.UpdatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.ChampionshipID, p.UnitID, p.RegularDone, p.RegularDate,
		p.AdvancedDone, p.AdvancedDate, p.DoctrinalUpToDate, p.SpecialtyCount, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *postgresClassProgressRepository) BatchCreate(ctx context.Context, progress []*models.ClassProgress) (int, error) {
	if len(progress) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO class_progress
		    (championship_id, unit_id, regular_done, regular_date, advanced_done, advanced_date, doctrinal_up_to_date, specialty_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (championship_id, unit_id) DO NOTHING`
	created := 0
	for _, p := range progress {
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = time.Now()
		}
		result, err := r.db.ExecContext(ctx, query,
			p.ChampionshipID, p.UnitID, p.RegularDone, p.RegularDate,
			p.AdvancedDone, p.AdvancedDate, p.DoctrinalUpToDate, p.SpecialtyCount, p.UpdatedAt,
		)
		if err != nil {
			return created, fmt.Errorf("BatchCreate failed for unit %d: %w", p.UnitID, err)
		}
		if affected, err := result.RowsAffected(); err == nil {
			created += int(affected)
		}
	}
	return created, nil
}

func (r *postgresClassProgressRepository) ListByChampionship(ctx context.Context, championshipID int) ([]models.ClassProgress, error) {
	query := `SELECT ` + classProgressColumns + ` FROM class_progress WHERE championship_id = $1 ORDER BY unit_id`
	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make([]models.ClassProgress, 0)
	for rows.Next() {
		p, errScan := r.scanProgress(rows)
		if errScan != nil {
			return nil, errScan
		}
		progress = append(progress, *p)
	}
	return progress, rows.Err()
}
