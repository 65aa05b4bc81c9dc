package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campstack/camp-system/models"
)

var (
	ErrSessionNotFound    = errors.New("check-in session not found")
	ErrAttendanceConflict = errors.New("user already checked in to this session")
)

type CheckinRepository interface {
	CreateSession(ctx context.Context, session *models.CheckinSession) error
	GetSessionByToken(ctx context.Context, token string) (*models.CheckinSession, error)
	GetSessionByID(ctx context.Context, id int) (*models.CheckinSession, error)
	CloseSession(ctx context.Context, id int) error
	CreateAttendance(ctx context.Context, att *models.Attendance) error
	GetAttendance(ctx context.Context, sessionID, userID int) (*models.Attendance, error)
	ListAttendance(ctx context.Context, sessionID int) ([]*models.Attendance, error)
}

type postgresCheckinRepository struct {
	db *sql.DB
}

func NewPostgresCheckinRepository(db *sql.DB) CheckinRepository {
	return &postgresCheckinRepository{db: db}
}

func (r *postgresCheckinRepository) CreateSession(ctx context.Context, session *models.CheckinSession) error {
	query := `
		INSERT INTO checkin_sessions (title, token, active, closes_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		session.Title,
		session.Token,
		session.Active,
		session.ClosesAt,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *postgresCheckinRepository) scanSession(row *sql.Row) (*models.CheckinSession, error) {
	session := &models.CheckinSession{}
	err := row.Scan(
		&session.ID,
		&session.Title,
		&session.Token,
		&session.Active,
		&session.CreatedAt,
		&session.ClosesAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (r *postgresCheckinRepository) GetSessionByToken(ctx context.Context, token string) (*models.CheckinSession, error) {
	query := `
		SELECT id, title, token, active, created_at, closes_at
		FROM checkin_sessions
		WHERE token = $1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, token))
}

func (r *postgresCheckinRepository) GetSessionByID(ctx context.Context, id int) (*models.CheckinSession, error) {
	query := `
		SELECT id, title, token, active, created_at, closes_at
		FROM checkin_sessions
		WHERE id = $1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresCheckinRepository) CloseSession(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE checkin_sessions SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresCheckinRepository) CreateAttendance(ctx context.Context, att *models.Attendance) error {
	query := `
		INSERT INTO attendance (session_id, user_id)
		VALUES ($1, $2)
		RETURNING id, checked_in_at`

	err := r.db.QueryRowContext(ctx, query, att.SessionID, att.UserID).Scan(&att.ID, &att.CheckedInAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_session_id_user_id_key") {
			return ErrAttendanceConflict
		}
		return err
	}
	return nil
}

func (r *postgresCheckinRepository) GetAttendance(ctx context.Context, sessionID, userID int) (*models.Attendance, error) {
	query := `
		SELECT id, session_id, user_id, checked_in_at
		FROM attendance
		WHERE session_id = $1 AND user_id = $2`

	att := &models.Attendance{}
	err := r.db.QueryRowContext(ctx, query, sessionID, userID).Scan(
		&att.ID,
		&att.SessionID,
		&att.UserID,
		&att.CheckedInAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *postgresCheckinRepository) ListAttendance(ctx context.Context, sessionID int) ([]*models.Attendance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, checked_in_at FROM attendance WHERE session_id = $1 ORDER BY checked_in_at ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.Attendance, 0)
	for rows.Next() {
		var att models.Attendance
		if scanErr := rows.Scan(&att.ID, &att.SessionID, &att.UserID, &att.CheckedInAt); scanErr != nil {
			return nil, scanErr
		}
		records = append(records, &att)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
