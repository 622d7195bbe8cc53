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
	ErrChampionshipNotFound     = errors.New("championship not found")
	ErrChampionshipNameConflict = errors.New("championship name already exists for this year")
)

type ChampionshipRepository interface {
	Create(ctx context.Context, championship *models.Championship) error
	GetByID(ctx context.Context, id int) (*models.Championship, error)
	List(ctx context.Context) ([]models.Championship, error)
	UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) error
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) Create(ctx context.Context, c *models.Championship) error {
	query := `
		INSERT INTO championships (name, year, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Year, c.Status, c.StartDate, c.EndDate, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrChampionshipNameConflict
		}
		return fmt.Errorf("failed to create championship: %w", err)
	}
	return nil
}

func (r *postgresChampionshipRepository) scanChampionship(rowScanner interface{ Scan(...interface{}) error }) (*models.Championship, error) {
	var c models.Championship
	err := rowScanner.Scan(&c.ID, &c.Name, &c.Year, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresChampionshipRepository) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	query := `
		SELECT id, name, year, status, start_date, end_date, created_at
		FROM championships WHERE id = $1`
	return r.scanChampionship(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresChampionshipRepository) List(ctx context.Context) ([]models.Championship, error) {
	query := `
		SELECT id, name, year, status, start_date, end_date, created_at
		FROM championships ORDER BY year DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	championships := make([]models.Championship, 0)
	for rows.Next() {
		c, errScan := r.scanChampionship(rows)
		if errScan != nil {
			return nil, errScan
		}
		championships = append(championships, *c)
	}
	return championships, rows.Err()
}

func (r *postgresChampionshipRepository) UpdateStatus(ctx context.Context, id int, status models.ChampionshipStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE championships SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}
