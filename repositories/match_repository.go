package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/campstack/camp-system/models"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrFixtureConflict covers both duplicate round-robin pairings and a
	// second final for the same sport; the partial unique indexes are the
	// backstop for concurrent generation.
	ErrFixtureConflict = errors.New("conflicting match already exists")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateAll(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListBySport(ctx context.Context, sport models.Sport, status *models.MatchStatus) ([]*models.Match, error)
	CountBySport(ctx context.Context, sport models.Sport) (int, error)
	CountByStatus(ctx context.Context, status models.MatchStatus) (int, error)
	UpdateScore(ctx context.Context, id int, scoreA, scoreB *int, status models.MatchStatus) error
	HasFinal(ctx context.Context, sport models.Sport) (bool, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, sport, team_a, team_b, scheduled_at, score_a, score_b, status, is_final, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (sport, team_a, team_b, scheduled_at, score_a, score_b, status, is_final)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.Sport,
		match.TeamA,
		match.TeamB,
		match.ScheduledAt,
		match.ScoreA,
		match.ScoreB,
		match.Status,
		match.IsFinal,
	).Scan(&match.ID, &match.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrFixtureConflict
		}
		return err
	}
	return nil
}

// CreateAll inserts a fixture set atomically. Used for round-robin
// generation so a partial bracket can never be observed.
func (r *postgresMatchRepository) CreateAll(ctx context.Context, matches []*models.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO matches (sport, team_a, team_b, scheduled_at, score_a, score_b, status, is_final)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	for _, match := range matches {
		err = tx.QueryRowContext(ctx, query,
			match.Sport,
			match.TeamA,
			match.TeamB,
			match.ScheduledAt,
			match.ScoreA,
			match.ScoreB,
			match.Status,
			match.IsFinal,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("insert failed: %w (rollback also failed: %v)", err, rbErr)
			}
			if isUniqueViolation(err, "") {
				return ErrFixtureConflict
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fixture set: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.Sport,
		&match.TeamA,
		&match.TeamB,
		&match.ScheduledAt,
		&match.ScoreA,
		&match.ScoreB,
		&match.Status,
		&match.IsFinal,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListBySport(ctx context.Context, sport models.Sport, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE sport = $1`)

	args := []interface{}{sport}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY is_final ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.Sport,
			&match.TeamA,
			&match.TeamB,
			&match.ScheduledAt,
			&match.ScoreA,
			&match.ScoreB,
			&match.Status,
			&match.IsFinal,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountBySport(ctx context.Context, sport models.Sport) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE sport = $1`, sport).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context, status models.MatchStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, scoreA, scoreB *int, status models.MatchStatus) error {
	query := `UPDATE matches SET score_a = $1, score_b = $2, status = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, scoreA, scoreB, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) HasFinal(ctx context.Context, sport models.Sport) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE sport = $1 AND is_final)`, sport).Scan(&exists)
	return exists, err
}
