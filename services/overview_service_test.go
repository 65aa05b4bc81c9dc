package services

import (
	"context"
	"strings"
	"testing"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/standings"
)

func TestOverviewSnapshot(t *testing.T) {
	regRepo := newFakeRegRepo()
	regRepo.add(1, models.TeamRed, models.GenderMale, 2)
	regRepo.add(2, models.TeamRed, models.GenderFemale, 2)
	regRepo.add(3, models.TeamBlue, models.GenderMale, 2)

	matchRepo := newFakeMatchRepo()
	entryRepo := newFakeEntryRepo()
	tournament := NewTournamentService(matchRepo, entryRepo, regRepo, standings.NewHub(), testLogger())
	matches, err := tournament.JoinSport(context.Background(), 1, models.SportBasketball)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	one, zero := 1, 0
	if _, err := tournament.UpdateScore(context.Background(), matches[0].ID, &one, &zero); err != nil {
		t.Fatalf("score: %v", err)
	}

	photoRepo := newFakePhotoRepo()
	gallery := NewGalleryService(photoRepo, newFakeUploader(), testLogger())
	if _, err := gallery.Upload(context.Background(), 1, "image/jpeg", strings.NewReader("img")); err != nil {
		t.Fatalf("upload: %v", err)
	}

	stats, err := NewOverviewService(regRepo, matchRepo, photoRepo).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if stats.CampersTotal != 3 {
		t.Errorf("campers = %d, want 3", stats.CampersTotal)
	}
	if stats.MatchesScheduled != 5 || stats.MatchesCompleted != 1 {
		t.Errorf("matches = %d scheduled / %d completed, want 5/1", stats.MatchesScheduled, stats.MatchesCompleted)
	}
	if stats.PhotosPending != 1 {
		t.Errorf("pending photos = %d, want 1", stats.PhotosPending)
	}
	if len(stats.TeamBalances) != 4 {
		t.Fatalf("expected a balance row per team, got %d", len(stats.TeamBalances))
	}
	if stats.TeamBalances[0].Team != models.TeamRed || stats.TeamBalances[0].Total != 2 {
		t.Errorf("red balance = %+v", stats.TeamBalances[0])
	}
}
