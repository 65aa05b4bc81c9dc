package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campstack/camp-system/models"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationConflict = errors.New("user is already registered")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByUserID(ctx context.Context, userID int) (*models.Registration, error)
	// UpdateTeamAndDecrement moves the user and burns one switch in a single
	// statement. The surrounding check-then-write sequence is still not
	// atomic; see the team service.
	UpdateTeamAndDecrement(ctx context.Context, userID int, team models.Team) error
	UpdateTeam(ctx context.Context, userID int, team models.Team) error
	TeamBalances(ctx context.Context) (map[models.Team]models.TeamBalance, error)
	CountParticipating(ctx context.Context) (int, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (user_id, team, gender, switches_remaining, is_participating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		reg.UserID,
		reg.Team,
		reg.Gender,
		reg.SwitchesRemaining,
		reg.IsParticipating,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "registrations_user_id_key") {
			return ErrRegistrationConflict
		}
		return err
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByUserID(ctx context.Context, userID int) (*models.Registration, error) {
	query := `
		SELECT id, user_id, team, gender, switches_remaining, is_participating, created_at, updated_at
		FROM registrations
		WHERE user_id = $1`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.Team,
		&reg.Gender,
		&reg.SwitchesRemaining,
		&reg.IsParticipating,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) UpdateTeamAndDecrement(ctx context.Context, userID int, team models.Team) error {
	query := `
		UPDATE registrations
		SET team = $1, switches_remaining = switches_remaining - 1, updated_at = now()
		WHERE user_id = $2 AND switches_remaining > 0`

	result, err := r.db.ExecContext(ctx, query, team, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) UpdateTeam(ctx context.Context, userID int, team models.Team) error {
	query := `UPDATE registrations SET team = $1, updated_at = now() WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, team, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) TeamBalances(ctx context.Context) (map[models.Team]models.TeamBalance, error) {
	query := `
		SELECT team,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE gender = 'male'),
		       COUNT(*) FILTER (WHERE gender = 'female')
		FROM registrations
		WHERE is_participating
		GROUP BY team`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[models.Team]models.TeamBalance, 4)
	for _, team := range models.AllTeams() {
		balances[team] = models.TeamBalance{Team: team}
	}
	for rows.Next() {
		var b models.TeamBalance
		if scanErr := rows.Scan(&b.Team, &b.Total, &b.Male, &b.Female); scanErr != nil {
			return nil, scanErr
		}
		balances[b.Team] = b
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

func (r *postgresRegistrationRepository) CountParticipating(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE is_participating`).Scan(&count)
	return count, err
}
