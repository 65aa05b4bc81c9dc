package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"github.com/campstack/camp-system/standings"
)

type TournamentService interface {
	// JoinSport opts a user into a tournament sport, generating the sport's
	// round-robin fixtures on first entry.
	JoinSport(ctx context.Context, userID int, sport models.Sport) ([]*models.Match, error)
	Matches(ctx context.Context, sport models.Sport, status *models.MatchStatus) ([]*models.Match, error)
	UpdateScore(ctx context.Context, matchID int, scoreA, scoreB *int) (*models.Match, error)
	Standings(ctx context.Context, sport models.Sport) ([]models.StandingRow, error)
	// EnsureFinal mints the championship match once all six round-robin
	// fixtures are completed. A no-op when the precondition fails or the
	// final already exists.
	EnsureFinal(ctx context.Context, sport models.Sport) (*models.Match, bool, error)
	SweepFinals(ctx context.Context) error
	RunRecomputeWorker(ctx context.Context)
}

type tournamentService struct {
	matchRepo repositories.MatchRepository
	entryRepo repositories.EntryRepository
	regRepo   repositories.RegistrationRepository
	hub       *standings.Hub
	logger    *slog.Logger

	// Score and fixture mutations enqueue the sport here; the worker
	// re-derives the table, evaluates the final rule, and broadcasts.
	recompute chan models.Sport
}

func NewTournamentService(
	matchRepo repositories.MatchRepository,
	entryRepo repositories.EntryRepository,
	regRepo repositories.RegistrationRepository,
	hub *standings.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		matchRepo: matchRepo,
		entryRepo: entryRepo,
		regRepo:   regRepo,
		hub:       hub,
		logger:    logger,
		recompute: make(chan models.Sport, 64),
	}
}

func (s *tournamentService) JoinSport(ctx context.Context, userID int, sport models.Sport) ([]*models.Match, error) {
	if !sport.Valid() {
		return nil, ErrValidationFailed
	}

	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationMissing
		}
		return nil, err
	}
	if !sport.AllowsGender(reg.Gender) {
		return nil, fmt.Errorf("%w: %s is not open to %s participants", ErrSportRestricted, sport, reg.Gender)
	}

	entry := &models.SportEntry{UserID: userID, Sport: sport}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrEntryConflict) {
			return nil, ErrAlreadyEntered
		}
		return nil, err
	}

	matches, err := s.ensureFixtures(ctx, sport)
	if err != nil {
		return nil, err
	}
	s.enqueue(sport)
	return matches, nil
}

// ensureFixtures generates the six round-robin fixtures when the sport has
// none. Idempotent: existing matches short-circuit generation, and a
// concurrent generator losing the unique-index race falls back to re-reading
// what the winner wrote.
func (s *tournamentService) ensureFixtures(ctx context.Context, sport models.Sport) ([]*models.Match, error) {
	count, err := s.matchRepo.CountBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches for %s: %w", sport, err)
	}
	if count > 0 {
		return s.matchRepo.ListBySport(ctx, sport, nil)
	}

	pairings := standings.RoundRobinPairings()
	matches := make([]*models.Match, 0, len(pairings))
	for _, pairing := range pairings {
		matches = append(matches, &models.Match{
			Sport:  sport,
			TeamA:  pairing[0],
			TeamB:  pairing[1],
			Status: models.MatchStatusScheduled,
		})
	}

	if err := s.matchRepo.CreateAll(ctx, matches); err != nil {
		if errors.Is(err, repositories.ErrFixtureConflict) {
			// Someone else generated concurrently; re-derive from the DB.
			return s.matchRepo.ListBySport(ctx, sport, nil)
		}
		return nil, fmt.Errorf("failed to create fixtures for %s: %w", sport, err)
	}

	s.logger.InfoContext(ctx, "round-robin fixtures generated",
		slog.String("sport", string(sport)), slog.Int("matches", len(matches)))
	return matches, nil
}

func (s *tournamentService) Matches(ctx context.Context, sport models.Sport, status *models.MatchStatus) ([]*models.Match, error) {
	if !sport.Valid() {
		return nil, ErrValidationFailed
	}
	if status != nil && !status.Valid() {
		return nil, ErrValidationFailed
	}
	return s.matchRepo.ListBySport(ctx, sport, status)
}

// UpdateScore records a match result. Nil means "not yet played"; negative
// input is clamped to zero. Status moves to completed only when both scores
// are present. Any write failure leaves the database untouched and the
// caller re-derives state on the next read.
func (s *tournamentService) UpdateScore(ctx context.Context, matchID int, scoreA, scoreB *int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusCancelled {
		return nil, ErrMatchCancelled
	}

	scoreA = standings.ClampScore(scoreA)
	scoreB = standings.ClampScore(scoreB)

	status := models.MatchStatusScheduled
	if scoreA != nil && scoreB != nil {
		status = models.MatchStatusCompleted
	}

	if err := s.matchRepo.UpdateScore(ctx, matchID, scoreA, scoreB, status); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	match, err = s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	s.enqueue(match.Sport)
	return match, nil
}

func (s *tournamentService) Standings(ctx context.Context, sport models.Sport) ([]models.StandingRow, error) {
	if !sport.Valid() {
		return nil, ErrValidationFailed
	}
	matches, err := s.matchRepo.ListBySport(ctx, sport, nil)
	if err != nil {
		return nil, err
	}
	return standings.ComputeTable(matches), nil
}

func (s *tournamentService) EnsureFinal(ctx context.Context, sport models.Sport) (*models.Match, bool, error) {
	hasFinal, err := s.matchRepo.HasFinal(ctx, sport)
	if err != nil {
		return nil, false, err
	}
	if hasFinal {
		return nil, false, nil
	}

	matches, err := s.matchRepo.ListBySport(ctx, sport, nil)
	if err != nil {
		return nil, false, err
	}
	if !standings.RoundRobinComplete(matches) {
		return nil, false, nil
	}

	table := standings.ComputeTable(matches)
	first, second, ok := standings.TopTwo(table)
	if !ok {
		return nil, false, nil
	}

	final := &models.Match{
		Sport:   sport,
		TeamA:   first,
		TeamB:   second,
		Status:  models.MatchStatusScheduled,
		IsFinal: true,
	}
	if err := s.matchRepo.Create(ctx, final); err != nil {
		if errors.Is(err, repositories.ErrFixtureConflict) {
			// Lost the race to a concurrent evaluation; the final exists.
			return nil, false, nil
		}
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "final match created",
		slog.String("sport", string(sport)),
		slog.String("team_a", string(first)),
		slog.String("team_b", string(second)))
	return final, true, nil
}

// SweepFinals evaluates the final rule for every sport. Run periodically as
// a safety net; idempotence makes repeat passes free.
func (s *tournamentService) SweepFinals(ctx context.Context) error {
	for _, sport := range models.AllSports() {
		if _, created, err := s.EnsureFinal(ctx, sport); err != nil {
			return fmt.Errorf("final sweep failed for %s: %w", sport, err)
		} else if created {
			s.broadcast(ctx, sport)
		}
	}
	return nil
}

func (s *tournamentService) enqueue(sport models.Sport) {
	select {
	case s.recompute <- sport:
	default:
		// A full queue means a recompute for some sport is already pending;
		// the worker re-derives everything from the DB anyway.
		s.logger.Warn("recompute queue full, dropping task", slog.String("sport", string(sport)))
	}
}

// RunRecomputeWorker drains the recompute queue: full re-derive of the
// standings table, final-rule evaluation, then a room broadcast. Never
// incremental patching.
func (s *tournamentService) RunRecomputeWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sport := <-s.recompute:
			if _, _, err := s.EnsureFinal(ctx, sport); err != nil {
				s.logger.ErrorContext(ctx, "final evaluation failed",
					slog.String("sport", string(sport)), slog.Any("error", err))
			}
			s.broadcast(ctx, sport)
		}
	}
}

func (s *tournamentService) broadcast(ctx context.Context, sport models.Sport) {
	matches, err := s.matchRepo.ListBySport(ctx, sport, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "broadcast fetch failed",
			slog.String("sport", string(sport)), slog.Any("error", err))
		return
	}
	room := "sport:" + string(sport)
	s.hub.BroadcastToRoom(room, standings.EventMatchUpdated, matches)
	s.hub.BroadcastToRoom(room, standings.EventStandingsUpdated, standings.ComputeTable(matches))
}
