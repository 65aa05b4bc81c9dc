package services

import "errors"

// Shared errors used across services and the HTTP error mapping. Business
// rule rejections carry the exact reason string the client surfaces.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Authentication / authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Team balance and switching
	ErrTeamAtCapacity      = errors.New("team is at maximum capacity")
	ErrGenderCapReached    = errors.New("team already has the maximum players of this gender")
	ErrAlreadyOnTeam       = errors.New("already on this team")
	ErrNoSwitchesRemaining = errors.New("no switches remaining")
	ErrNoAvailableTeam     = errors.New("all teams are full or gender-capped")
	ErrRegistrationMissing = errors.New("no registration found for user")

	// Tournament
	ErrSportRestricted = errors.New("sport is not open to this gender")
	ErrAlreadyEntered  = errors.New("already entered this sport")
	ErrMatchCancelled  = errors.New("cancelled match cannot accept a score")
	ErrMatchNotFound   = errors.New("match not found")

	// Check-in
	ErrSessionNotFound = errors.New("check-in session not found")
	ErrSessionClosed   = errors.New("check-in session is closed")
	ErrSessionExpired  = errors.New("check-in session has expired")

	// Gallery
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrPhotoAlreadyReviewed = errors.New("photo has already been reviewed")
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)
