package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campstack/camp-system/cache"
	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"github.com/campstack/camp-system/standings"
)

// Fixed roster caps. A team holds at most 24 members and at most 12 of
// either gender.
const (
	TeamCapacity   = 24
	GenderCapacity = 12
)

const (
	balancesCacheKey = "team:balances"
	balancesCacheTTL = 30 * time.Second
)

// CanTeamAccept decides whether a team with the given balance can take one
// more member of the given gender. A nil return means accept; otherwise the
// error is the user-facing reason.
func CanTeamAccept(balance models.TeamBalance, gender models.Gender) error {
	if balance.Total >= TeamCapacity {
		return ErrTeamAtCapacity
	}
	if balance.GenderCount(gender) >= GenderCapacity {
		return fmt.Errorf("%w: maximum %s players", ErrGenderCapReached, gender)
	}
	return nil
}

// CanSwitch decides whether the registered user may switch to dest right
// now. Capacity rejections from CanTeamAccept propagate with their reason.
func CanSwitch(reg *models.Registration, balances map[models.Team]models.TeamBalance, dest models.Team) error {
	if reg == nil {
		return ErrRegistrationMissing
	}
	if reg.Team == dest {
		return ErrAlreadyOnTeam
	}
	if reg.SwitchesRemaining <= 0 {
		return ErrNoSwitchesRemaining
	}
	return CanTeamAccept(balances[dest], reg.Gender)
}

// BestAvailable picks the acceptable team with the lowest headcount, ties
// broken by enumeration order. ok is false when every team is full or
// gender-capped.
func BestAvailable(balances map[models.Team]models.TeamBalance, gender models.Gender) (models.Team, bool) {
	var best models.Team
	found := false
	for _, team := range models.AllTeams() {
		balance := balances[team]
		if CanTeamAccept(balance, gender) != nil {
			continue
		}
		if !found || balance.Total < balances[best].Total {
			best = team
			found = true
		}
	}
	return best, found
}

type TeamService interface {
	Balances(ctx context.Context) (map[models.Team]models.TeamBalance, error)
	CanUserSwitchToTeam(ctx context.Context, userID int, dest models.Team) error
	SwitchTeam(ctx context.Context, userID int, dest models.Team) (*models.Registration, error)
	// AdminMovePlayer bypasses the switch counter and capacity checks. The
	// acceptance check still runs and its reason comes back as a
	// non-blocking warning.
	AdminMovePlayer(ctx context.Context, userID int, dest models.Team) (*models.Registration, string, error)
	BestAvailableTeam(ctx context.Context, gender models.Gender) (models.Team, error)
}

type teamService struct {
	regRepo repositories.RegistrationRepository
	cache   cache.Store
	hub     *standings.Hub
	logger  *slog.Logger
}

func NewTeamService(
	regRepo repositories.RegistrationRepository,
	cacheStore cache.Store,
	hub *standings.Hub,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		regRepo: regRepo,
		cache:   cacheStore,
		hub:     hub,
		logger:  logger,
	}
}

// Balances returns the per-team roster snapshot, read through the cache.
// The snapshot can be up to balancesCacheTTL stale between roster changes;
// mutations invalidate it explicitly.
func (s *teamService) Balances(ctx context.Context) (map[models.Team]models.TeamBalance, error) {
	if cached, err := s.cache.Get(ctx, balancesCacheKey); err == nil {
		var balances map[models.Team]models.TeamBalance
		if unmarshalErr := json.Unmarshal([]byte(cached), &balances); unmarshalErr == nil {
			return balances, nil
		}
		// A corrupt entry is dropped and recomputed.
		_ = s.cache.Delete(ctx, balancesCacheKey)
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "balance cache read failed, falling back to database", slog.Any("error", err))
	}

	balances, err := s.regRepo.TeamBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute team balances: %w", err)
	}

	if encoded, err := json.Marshal(balances); err == nil {
		if setErr := s.cache.Set(ctx, balancesCacheKey, string(encoded), balancesCacheTTL); setErr != nil {
			s.logger.WarnContext(ctx, "balance cache write failed", slog.Any("error", setErr))
		}
	}
	return balances, nil
}

func (s *teamService) CanUserSwitchToTeam(ctx context.Context, userID int, dest models.Team) error {
	if !dest.Valid() {
		return ErrValidationFailed
	}
	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationMissing
		}
		return err
	}
	balances, err := s.Balances(ctx)
	if err != nil {
		return err
	}
	return CanSwitch(reg, balances, dest)
}

// SwitchTeam performs the check-then-write switch sequence. The sequence is
// deliberately not atomic: two concurrent switches can both read "11 of 12"
// and both land, transiently exceeding the cap until the next recompute.
// This mirrors the documented behavior of the roster rules.
func (s *teamService) SwitchTeam(ctx context.Context, userID int, dest models.Team) (*models.Registration, error) {
	if err := s.CanUserSwitchToTeam(ctx, userID, dest); err != nil {
		return nil, err
	}

	if err := s.regRepo.UpdateTeamAndDecrement(ctx, userID, dest); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			// The guarded UPDATE also refuses when the counter hit zero
			// between check and write.
			return nil, ErrNoSwitchesRemaining
		}
		return nil, err
	}

	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.afterRosterChange(ctx)
	return reg, nil
}

func (s *teamService) AdminMovePlayer(ctx context.Context, userID int, dest models.Team) (*models.Registration, string, error) {
	if !dest.Valid() {
		return nil, "", ErrValidationFailed
	}
	reg, err := s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, "", ErrRegistrationMissing
		}
		return nil, "", err
	}

	warning := ""
	if balances, balErr := s.Balances(ctx); balErr == nil {
		if acceptErr := CanTeamAccept(balances[dest], reg.Gender); acceptErr != nil {
			warning = acceptErr.Error()
		}
	} else {
		s.logger.WarnContext(ctx, "advisory acceptance check skipped", slog.Any("error", balErr))
	}

	if err := s.regRepo.UpdateTeam(ctx, userID, dest); err != nil {
		return nil, "", err
	}

	reg, err = s.regRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	s.afterRosterChange(ctx)
	return reg, warning, nil
}

func (s *teamService) BestAvailableTeam(ctx context.Context, gender models.Gender) (models.Team, error) {
	if !gender.Valid() {
		return "", ErrValidationFailed
	}
	balances, err := s.Balances(ctx)
	if err != nil {
		return "", err
	}
	team, ok := BestAvailable(balances, gender)
	if !ok {
		return "", ErrNoAvailableTeam
	}
	return team, nil
}

// afterRosterChange invalidates the cached snapshot and pushes the fresh
// balances to the "teams" room. Subscribers re-render from the payload, they
// never patch.
func (s *teamService) afterRosterChange(ctx context.Context) {
	if err := s.cache.Delete(ctx, balancesCacheKey); err != nil {
		s.logger.WarnContext(ctx, "balance cache invalidation failed", slog.Any("error", err))
	}
	balances, err := s.regRepo.TeamBalances(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to recompute balances after roster change", slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom("teams", standings.EventRosterUpdated, balances)
}
