package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campstack/camp-system/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id int) (*models.Photo, error)
	UpdateStatus(ctx context.Context, id int, status models.PhotoStatus, reviewerID int) error
	ListByStatus(ctx context.Context, status models.PhotoStatus) ([]*models.Photo, error)
	CountByStatus(ctx context.Context, status models.PhotoStatus) (int, error)
}

type postgresPhotoRepository struct {
	db *sql.DB
}

func NewPostgresPhotoRepository(db *sql.DB) PhotoRepository {
	return &postgresPhotoRepository{db: db}
}

func (r *postgresPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (uploader_id, object_key, content_type, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		photo.UploaderID,
		photo.ObjectKey,
		photo.ContentType,
		photo.Status,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *postgresPhotoRepository) GetByID(ctx context.Context, id int) (*models.Photo, error) {
	query := `
		SELECT id, uploader_id, object_key, content_type, status, reviewed_by, created_at
		FROM photos
		WHERE id = $1`

	photo := &models.Photo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&photo.ID,
		&photo.UploaderID,
		&photo.ObjectKey,
		&photo.ContentType,
		&photo.Status,
		&photo.ReviewedBy,
		&photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (r *postgresPhotoRepository) UpdateStatus(ctx context.Context, id int, status models.PhotoStatus, reviewerID int) error {
	query := `UPDATE photos SET status = $1, reviewed_by = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, reviewerID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPhotoNotFound)
}

func (r *postgresPhotoRepository) ListByStatus(ctx context.Context, status models.PhotoStatus) ([]*models.Photo, error) {
	query := `
		SELECT id, uploader_id, object_key, content_type, status, reviewed_by, created_at
		FROM photos
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]*models.Photo, 0)
	for rows.Next() {
		var photo models.Photo
		if scanErr := rows.Scan(
			&photo.ID,
			&photo.UploaderID,
			&photo.ObjectKey,
			&photo.ContentType,
			&photo.Status,
			&photo.ReviewedBy,
			&photo.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		photos = append(photos, &photo)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *postgresPhotoRepository) CountByStatus(ctx context.Context, status models.PhotoStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE status = $1`, status).Scan(&count)
	return count, err
}
