package services

import (
	"context"
	"errors"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

// AuthService only verifies credentials. Account creation and recovery are
// handled outside this service.
type AuthService interface {
	Login(ctx context.Context, input models.Credentials) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrValidationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
