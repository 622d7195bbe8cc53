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
	ErrEvaluationNotFound    = errors.New("evaluation not found")
	ErrEvaluationUnitInvalid = errors.New("evaluation unit or championship invalid")
)

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id int) (*models.Evaluation, error)
	Delete(ctx context.Context, id int) error
	// ListByChampionship reads every evaluation of a championship in one
	// query; the synchronizer depends on this staying a single round trip.
	ListByChampionship(ctx context.Context, championshipID int) ([]models.Evaluation, error)
	ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Evaluation, error)
	ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Evaluation, error)
}

type postgresEvaluationRepository struct {
	db *sql.DB
}

func NewPostgresEvaluationRepository(db *sql.DB) EvaluationRepository {
	return &postgresEvaluationRepository{db: db}
}

const evaluationColumns = `id, championship_id, unit_id, date, category, subtype, color, points, note, created_by, created_at`

func (r *postgresEvaluationRepository) Create(ctx context.Context, e *models.Evaluation) error {
	query := `
		INSERT INTO evaluations (championship_id, unit_id, date, category, subtype, color, points, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query,
		e.ChampionshipID, e.UnitID, e.Date, e.Category, e.Subtype, e.Color, e.Points, e.Note, e.CreatedBy, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrEvaluationUnitInvalid
		}
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *postgresEvaluationRepository) scanEvaluation(rowScanner interface{ Scan(...interface{}) error }) (*models.Evaluation, error) {
	var e models.Evaluation
	err := rowScanner.Scan(
		&e.ID, &e.ChampionshipID, &e.UnitID, &e.Date, &e.Category, &e.Subtype,
		&e.Color, &e.Points, &e.Note, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEvaluationRepository) GetByID(ctx context.Context, id int) (*models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE id = $1`
	return r.scanEvaluation(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresEvaluationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEvaluationNotFound)
}

func (r *postgresEvaluationRepository) ListByChampionship(ctx context.Context, championshipID int) ([]models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE championship_id = $1 ORDER BY date, id`
	return r.list(ctx, query, championshipID)
}

func (r *postgresEvaluationRepository) ListByUnitAndDate(ctx context.Context, championshipID, unitID int, date time.Time) ([]models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations
		WHERE championship_id = $1 AND unit_id = $2 AND date = $3 ORDER BY id`
	return r.list(ctx, query, championshipID, unitID, date)
}

func (r *postgresEvaluationRepository) ListByUnitSince(ctx context.Context, championshipID, unitID int, from time.Time) ([]models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations
		WHERE championship_id = $1 AND unit_id = $2 AND date >= $3 ORDER BY date, id`
	return r.list(ctx, query, championshipID, unitID, from)
}

func (r *postgresEvaluationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluations := make([]models.Evaluation, 0)
	for rows.Next() {
		e, errScan := r.scanEvaluation(rows)
		if errScan != nil {
			return nil, errScan
		}
		evaluations = append(evaluations, *e)
	}
	return evaluations, rows.Err()
}
