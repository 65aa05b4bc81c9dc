package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campstack/camp-system/models"
)

var ErrEntryConflict = errors.New("user already entered this sport")

type EntryRepository interface {
	Create(ctx context.Context, entry *models.SportEntry) error
	Exists(ctx context.Context, userID int, sport models.Sport) (bool, error)
	ListBySport(ctx context.Context, sport models.Sport) ([]*models.SportEntry, error)
}

type postgresEntryRepository struct {
	db *sql.DB
}

func NewPostgresEntryRepository(db *sql.DB) EntryRepository {
	return &postgresEntryRepository{db: db}
}

func (r *postgresEntryRepository) Create(ctx context.Context, entry *models.SportEntry) error {
	query := `
		INSERT INTO sport_entries (user_id, sport)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.Sport).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "sport_entries_user_id_sport_key") {
			return ErrEntryConflict
		}
		return err
	}
	return nil
}

func (r *postgresEntryRepository) Exists(ctx context.Context, userID int, sport models.Sport) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sport_entries WHERE user_id = $1 AND sport = $2)`,
		userID, sport).Scan(&exists)
	return exists, err
}

func (r *postgresEntryRepository) ListBySport(ctx context.Context, sport models.Sport) ([]*models.SportEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, sport, created_at FROM sport_entries WHERE sport = $1 ORDER BY created_at ASC`,
		sport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.SportEntry, 0)
	for rows.Next() {
		var entry models.SportEntry
		if scanErr := rows.Scan(&entry.ID, &entry.UserID, &entry.Sport, &entry.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
