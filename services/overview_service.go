package services

import (
	"context"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"golang.org/x/sync/errgroup"
)

type OverviewService interface {
	Snapshot(ctx context.Context) (*models.OverviewStats, error)
}

type overviewService struct {
	regRepo   repositories.RegistrationRepository
	matchRepo repositories.MatchRepository
	photoRepo repositories.PhotoRepository
}

func NewOverviewService(
	regRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	photoRepo repositories.PhotoRepository,
) OverviewService {
	return &overviewService{
		regRepo:   regRepo,
		matchRepo: matchRepo,
		photoRepo: photoRepo,
	}
}

// Snapshot aggregates the staff dashboard counters in parallel.
func (s *overviewService) Snapshot(ctx context.Context) (*models.OverviewStats, error) {
	stats := &models.OverviewStats{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.regRepo.CountParticipating(gCtx)
		stats.CampersTotal = count
		return err
	})

	g.Go(func() error {
		balances, err := s.regRepo.TeamBalances(gCtx)
		if err != nil {
			return err
		}
		for _, team := range models.AllTeams() {
			stats.TeamBalances = append(stats.TeamBalances, balances[team])
		}
		return nil
	})

	g.Go(func() error {
		count, err := s.matchRepo.CountByStatus(gCtx, models.MatchStatusScheduled)
		stats.MatchesScheduled = count
		return err
	})

	g.Go(func() error {
		count, err := s.matchRepo.CountByStatus(gCtx, models.MatchStatusCompleted)
		stats.MatchesCompleted = count
		return err
	})

	g.Go(func() error {
		count, err := s.photoRepo.CountByStatus(gCtx, models.PhotoStatusPending)
		stats.PhotosPending = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
