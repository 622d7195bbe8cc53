package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dbv-club/championship-system/models"
)

var (
	ErrRankingEntryNotFound = errors.New("ranking entry not found")
	ErrRankingUnitInvalid   = errors.New("ranking unit conflict or invalid")
)

type RankingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, entry *models.RankingEntry) error
	// BatchCreate inserts missing entries and reports how many rows were
	// actually created; units that already have one are left untouched.
	BatchCreate(ctx context.Context, exec SQLExecutor, entries []*models.RankingEntry) (int, error)
	GetByChampionshipAndUnit(ctx context.Context, exec SQLExecutor, championshipID, unitID int) (*models.RankingEntry, error)
	ListByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) ([]*models.RankingEntry, error)
	// UpdateScore overwrites (total_points, position) for one unit. The
	// synchronizer is the only caller; nothing else writes these columns.
	UpdateScore(ctx context.Context, exec SQLExecutor, championshipID, unitID, totalPoints, position int) error
	ListLeaderboard(ctx context.Context, exec SQLExecutor, championshipID int, nameFilter string) ([]models.LeaderboardRow, error)
	LastSyncedAt(ctx context.Context, exec SQLExecutor, championshipID int) (*time.Time, error)
}

type postgresRankingRepository struct {
	db *sql.DB
}

func NewPostgresRankingRepository(db *sql.DB) RankingRepository {
	return &postgresRankingRepository{db: db}
}

func (r *postgresRankingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRankingRepository) Create(ctx context.Context, exec SQLExecutor, entry *models.RankingEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO ranking_entries (championship_id, unit_id, total_points, position, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		entry.ChampionshipID, entry.UnitID, entry.TotalPoints, entry.Position, entry.UpdatedAt,
	).Scan(&entry.ID)
}

func (r *postgresRankingRepository) BatchCreate(ctx context.Context, exec SQLExecutor, entries []*models.RankingEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	executor := r.getExecutor(exec)
	// ON CONFLICT DO NOTHING keeps the bootstrap idempotent: units that
	// already have an entry are skipped, not duplicated.
	query := `
		INSERT INTO ranking_entries (championship_id, unit_id, total_points, position, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (championship_id, unit_id) DO NOTHING`
	created := 0
	for _, entry := range entries {
		if entry.UpdatedAt.IsZero() {
			entry.UpdatedAt = time.Now()
		}
		result, err := executor.ExecContext(ctx, query,
			entry.ChampionshipID, entry.UnitID, entry.TotalPoints, entry.Position, entry.UpdatedAt,
		)
		if err != nil {
			return created, fmt.Errorf("BatchCreate failed for unit %d: %w", entry.UnitID, err)
		}
		if affected, err := result.RowsAffected(); err == nil {
			created += int(affected)
		}
	}
	return created, nil
}

func (r *postgresRankingRepository) scanEntry(rowScanner interface{ Scan(...interface{}) error }) (*models.RankingEntry, error) {
	var e models.RankingEntry
	err := rowScanner.Scan(&e.ID, &e.ChampionshipID, &e.UnitID, &e.TotalPoints, &e.Position, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRankingEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresRankingRepository) GetByChampionshipAndUnit(ctx context.Context, exec SQLExecutor, championshipID, unitID int) (*models.RankingEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, championship_id, unit_id, total_points, position, updated_at
		FROM ranking_entries
		WHERE championship_id = $1 AND unit_id = $2`
	return r.scanEntry(executor.QueryRowContext(ctx, query, championshipID, unitID))
}

func (r *postgresRankingRepository) ListByChampionship(ctx context.Context, exec SQLExecutor, championshipID int) ([]*models.RankingEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, championship_id, unit_id, total_points, position, updated_at
		FROM ranking_entries
		WHERE championship_id = $1
		ORDER BY unit_id`
	rows, err := executor.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.RankingEntry, 0)
	for rows.Next() {
		e, errScan := r.scanEntry(rows)
		if errScan != nil {
			return nil, errScan
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRankingRepository) UpdateScore(ctx context.Context, exec SQLExecutor, championshipID, unitID, totalPoints, position int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE ranking_entries
		SET total_points = $1, position = $2, updated_at = $3
		WHERE championship_id = $4 AND unit_id = $5`
	result, err := executor.ExecContext(ctx, query, totalPoints, position, time.Now(), championshipID, unitID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRankingEntryNotFound)
}

func (r *postgresRankingRepository) ListLeaderboard(ctx context.Context, exec SQLExecutor, championshipID int, nameFilter string) ([]models.LeaderboardRow, error) {
	executor := r.getExecutor(exec)
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT re.position, re.unit_id, u.name, u.color, re.total_points
		FROM ranking_entries re
		JOIN units u ON u.id = re.unit_id
		WHERE re.championship_id = $1`)
	args := []interface{}{championshipID}
	if nameFilter != "" {
		args = append(args, "%"+nameFilter+"%")
		queryBuilder.WriteString(fmt.Sprintf(" AND u.name ILIKE $%d", len(args)))
	}
	// Sort order must match the synchronizer's tie-break.
	queryBuilder.WriteString(" ORDER BY re.total_points DESC, re.unit_id ASC")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	board := make([]models.LeaderboardRow, 0)
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.Position, &row.UnitID, &row.UnitName, &row.UnitColor, &row.TotalPoints); err != nil {
			return nil, err
		}
		board = append(board, row)
	}
	return board, rows.Err()
}

func (r *postgresRankingRepository) LastSyncedAt(ctx context.Context, exec SQLExecutor, championshipID int) (*time.Time, error) {
	executor := r.getExecutor(exec)
	var last sql.NullTime
	err := executor.QueryRowContext(ctx,
		`SELECT MAX(updated_at) FROM ranking_entries WHERE championship_id = $1`, championshipID,
	).Scan(&last)
	if err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
