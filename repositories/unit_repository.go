package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrUnitNotFound     = errors.New("unit not found")
	ErrUnitNameConflict = errors.New("unit name already in use")
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id int) (*models.Unit, error)
	ListActive(ctx context.Context) ([]models.Unit, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	UpdateEmblemKey(ctx context.Context, id int, emblemKey *string) error
}

type postgresUnitRepository struct {
	db *sql.DB
}

func NewPostgresUnitRepository(db *sql.DB) UnitRepository {
	return &postgresUnitRepository{db: db}
}

func (r *postgresUnitRepository) Create(ctx context.Context, u *models.Unit) error {
	query := `
		INSERT INTO units (name, color, active, emblem_key, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Color, u.Active, u.EmblemKey, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrUnitNameConflict
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}
	return nil
}

func (r *postgresUnitRepository) scanUnit(rowScanner interface{ Scan(...interface{}) error }) (*models.Unit, error) {
	var u models.Unit
	err := rowScanner.Scan(&u.ID, &u.Name, &u.Color, &u.Active, &u.EmblemKey, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresUnitRepository) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	query := `SELECT id, name, color, active, emblem_key, created_at FROM units WHERE id = $1`
	return r.scanUnit(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUnitRepository) ListActive(ctx context.Context) ([]models.Unit, error) {
	query := `SELECT id, name, color, active, emblem_key, created_at FROM units WHERE active ORDER BY id`
	return r.list(ctx, query)
}

func (r *postgresUnitRepository) ListByIDs(ctx context.Context, ids []int) ([]models.Unit, error) {
	query := `SELECT id, name, color, active, emblem_key, created_at FROM units WHERE id = ANY($1) ORDER BY id`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *postgresUnitRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Unit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]models.Unit, 0)
	for rows.Next() {
		u, errScan := r.scanUnit(rows)
		if errScan != nil {
			return nil, errScan
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

func (r *postgresUnitRepository) Update(ctx context.Context, u *models.Unit) error {
	query := `UPDATE units SET name = $1, color = $2, active = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, u.Name, u.Color, u.Active, u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrUnitNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrUnitNotFound)
}

func (r *postgresUnitRepository) UpdateEmblemKey(ctx context.Context, id int, emblemKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE units SET emblem_key = $1 WHERE id = $2`, emblemKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUnitNotFound)
}
