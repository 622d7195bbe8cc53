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
	ErrDemeritNotFound    = errors.New("demerit not found")
	ErrDemeritUnitInvalid = errors.New("demerit unit or championship invalid")
)

type DemeritRepository interface {
	Create(ctx context.Context, demerit *models.Demerit) error
	GetByID(ctx context.Context, id int) (*models.Demerit, error)
	Delete(ctx context.Context, id int) error
	ListByChampionship(ctx context.Context, championshipID int) ([]models.Demerit, error)
	ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Demerit, error)
	ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Demerit, error)
}

type postgresDemeritRepository struct {
	db *sql.DB
}

func NewPostgresDemeritRepository(db *sql.DB) DemeritRepository {
	return &postgresDemeritRepository{db: db}
}

const demeritColumns = `id, championship_id, unit_id, date, type, tier, points, description, created_by, created_at`

func (r *postgresDemeritRepository) Create(ctx context.Context, d *models.Demerit) error {
	query := `
		INSERT INTO demerits (championship_id, unit_id, date, type, tier, points, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		d.ChampionshipID, d.UnitID, d.Date, d.Type, d.Tier, d.Points, d.Description, d.CreatedBy, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDemeritUnitInvalid
		}
		return fmt.Errorf("failed to create demerit: %w", err)
	}
	return nil
}

func (r *postgresDemeritRepository) scanDemerit(rowScanner interface{ Scan(...interface{}) error }) (*models.Demerit, error) {
	var d models.Demerit
	err := rowScanner.Scan(
		&d.ID, &d.ChampionshipID, &d.UnitID, &d.Date, &d.Type, &d.Tier,
		&d.Points, &d.Description, &d.CreatedBy, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDemeritNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDemeritRepository) GetByID(ctx context.Context, id int) (*models.Demerit, error) {
	query := `SELECT ` + demeritColumns + ` FROM demerits WHERE id = $1`
	return r.scanDemerit(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresDemeritRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM demerits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrDemeritNotFound)
}

func (r *postgresDemeritRepository) ListByChampionship(ctx context.Context, championshipID int) ([]models.Demerit, error) {
	query := `SELECT ` + demeritColumns + ` FROM demerits WHERE championship_id = $1 ORDER BY date, id`
	return r.list(ctx, query, championshipID)
}

func (r *postgresDemeritRepository) ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Demerit, error) {
	query := `SELECT ` + demeritColumns + ` FROM demerits
		WHERE championship_id = $1 AND unit_id = $2 AND date = $3 ORDER BY id`
	return r.list(ctx, query, championshipID, unitID, date)
}

func (r *postgresDemeritRepository) ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Demerit, error) {
	query := `SELECT ` + demeritColumns + ` FROM demerits
		WHERE championship_id = $1 AND unit_id = $2 AND date >= $3 ORDER BY date, id`
	return r.list(ctx, query, championshipID, unitID, from)
}

func (r *postgresDemeritRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Demerit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demerits := make([]models.Demerit, 0)
	for rows.Next() {
		d, errScan := r.scanDemerit(rows)
		if errScan != nil {
			return nil, errScan
		}
		demerits = append(demerits, *d)
	}
	return demerits, rows.Err()
}
