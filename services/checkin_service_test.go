package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campstack/camp-system/standings"
)

func newCheckinServiceForTest(repo *fakeCheckinRepo) CheckinService {
	return NewCheckinService(repo, standings.NewHub(), testLogger())
}

func TestCreateSessionIssuesToken(t *testing.T) {
	svc := newCheckinServiceForTest(newFakeCheckinRepo())

	session, err := svc.CreateSession(context.Background(), "morning assembly", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.Token == "" {
		t.Error("session token should be generated")
	}
	if !session.Active {
		t.Error("new session should be active")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := newCheckinServiceForTest(newFakeCheckinRepo())

	if _, err := svc.CreateSession(context.Background(), "", nil); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty title: expected ErrValidationFailed, got %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if _, err := svc.CreateSession(context.Background(), "late", &past); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("past closing time: expected ErrValidationFailed, got %v", err)
	}
}

func TestCheckInIdempotent(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := newCheckinServiceForTest(repo)

	session, err := svc.CreateSession(context.Background(), "lunch", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.CheckIn(context.Background(), session.Token, 7)
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	second, err := svc.CheckIn(context.Background(), session.Token, 7)
	if err != nil {
		t.Fatalf("re-scan should succeed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-scan returned a new record: %d vs %d", second.ID, first.ID)
	}

	records, err := svc.ListAttendance(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected a single attendance record, got %d", len(records))
	}
}

func TestCheckInClosedSession(t *testing.T) {
	svc := newCheckinServiceForTest(newFakeCheckinRepo())

	session, err := svc.CreateSession(context.Background(), "campfire", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.CloseSession(context.Background(), session.ID); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := svc.CheckIn(context.Background(), session.Token, 7); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestCheckInExpiredSession(t *testing.T) {
	repo := newFakeCheckinRepo()
	svc := newCheckinServiceForTest(repo)

	session, err := svc.CreateSession(context.Background(), "hike", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Age the window past its deadline directly in the store.
	expired := time.Now().Add(-time.Minute)
	repo.sessions[session.ID].ClosesAt = &expired

	if _, err := svc.CheckIn(context.Background(), session.Token, 7); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestCheckInUnknownToken(t *testing.T) {
	svc := newCheckinServiceForTest(newFakeCheckinRepo())

	if _, err := svc.CheckIn(context.Background(), "no-such-token", 7); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListAttendanceUnknownSession(t *testing.T) {
	svc := newCheckinServiceForTest(newFakeCheckinRepo())

	if _, err := svc.ListAttendance(context.Background(), 42); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
