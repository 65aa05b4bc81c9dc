package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"github.com/campstack/camp-system/standings"
	"github.com/google/uuid"
)

type CheckinService interface {
	// CreateSession opens an attendance window. The returned session token
	// is what clients render as a QR code.
	CreateSession(ctx context.Context, title string, closesAt *time.Time) (*models.CheckinSession, error)
	CloseSession(ctx context.Context, sessionID int) error
	// CheckIn records attendance for the session identified by token.
	// Re-scanning an already-used code is idempotent: the original record
	// comes back.
	CheckIn(ctx context.Context, token string, userID int) (*models.Attendance, error)
	ListAttendance(ctx context.Context, sessionID int) ([]*models.Attendance, error)
}

type checkinService struct {
	checkinRepo repositories.CheckinRepository
	hub         *standings.Hub
	logger      *slog.Logger
}

func NewCheckinService(checkinRepo repositories.CheckinRepository, hub *standings.Hub, logger *slog.Logger) CheckinService {
	return &checkinService{
		checkinRepo: checkinRepo,
		hub:         hub,
		logger:      logger,
	}
}

func (s *checkinService) CreateSession(ctx context.Context, title string, closesAt *time.Time) (*models.CheckinSession, error) {
	if title == "" {
		return nil, ErrValidationFailed
	}
	if closesAt != nil && closesAt.Before(time.Now()) {
		return nil, ErrValidationFailed
	}

	session := &models.CheckinSession{
		Title:    title,
		Token:    uuid.NewString(),
		Active:   true,
		ClosesAt: closesAt,
	}
	if err := s.checkinRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "check-in session opened",
		slog.Int("session_id", session.ID), slog.String("title", title))
	return session, nil
}

func (s *checkinService) CloseSession(ctx context.Context, sessionID int) error {
	err := s.checkinRepo.CloseSession(ctx, sessionID)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *checkinService) CheckIn(ctx context.Context, token string, userID int) (*models.Attendance, error) {
	if token == "" {
		return nil, ErrValidationFailed
	}

	session, err := s.checkinRepo.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !session.Active {
		return nil, ErrSessionClosed
	}
	if session.ClosesAt != nil && time.Now().After(*session.ClosesAt) {
		return nil, ErrSessionExpired
	}

	att := &models.Attendance{SessionID: session.ID, UserID: userID}
	if err := s.checkinRepo.CreateAttendance(ctx, att); err != nil {
		if errors.Is(err, repositories.ErrAttendanceConflict) {
			return s.checkinRepo.GetAttendance(ctx, session.ID, userID)
		}
		return nil, err
	}

	s.hub.BroadcastToRoom(sessionRoom(session.ID), standings.EventAttendanceRecorded, att)
	return att, nil
}

func (s *checkinService) ListAttendance(ctx context.Context, sessionID int) ([]*models.Attendance, error) {
	if _, err := s.checkinRepo.GetSessionByID(ctx, sessionID); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.checkinRepo.ListAttendance(ctx, sessionID)
}

func sessionRoom(sessionID int) string {
	return "session:" + strconv.Itoa(sessionID)
}
