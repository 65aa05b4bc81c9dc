package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/repositories"
	"github.com/campstack/camp-system/storage"
	"github.com/google/uuid"
)

type GalleryService interface {
	// Upload stores the image in object storage and records it as pending
	// moderation.
	Upload(ctx context.Context, uploaderID int, contentType string, reader io.Reader) (*models.Photo, error)
	// Review resolves a pending photo. Rejected photos are removed from
	// object storage.
	Review(ctx context.Context, photoID, reviewerID int, approve bool) (*models.Photo, error)
	ListApproved(ctx context.Context) ([]*models.Photo, error)
	ListPending(ctx context.Context) ([]*models.Photo, error)
}

type galleryService struct {
	photoRepo repositories.PhotoRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewGalleryService(photoRepo repositories.PhotoRepository, uploader storage.FileUploader, logger *slog.Logger) GalleryService {
	return &galleryService{
		photoRepo: photoRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *galleryService) Upload(ctx context.Context, uploaderID int, contentType string, reader io.Reader) (*models.Photo, error) {
	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}

	key := "photos/" + uuid.NewString() + ext
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo := &models.Photo{
		UploaderID:  uploaderID,
		ObjectKey:   key,
		ContentType: contentType,
		Status:      models.PhotoStatusPending,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Orphaned objects are worse than a failed upload; best effort
		// cleanup before surfacing the error.
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to clean up orphaned photo object",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}

	photo.URL = s.uploader.GetPublicURL(key)
	return photo, nil
}

func (s *galleryService) Review(ctx context.Context, photoID, reviewerID int, approve bool) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhotoNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if photo.Status != models.PhotoStatusPending {
		return nil, ErrPhotoAlreadyReviewed
	}

	status := models.PhotoStatusApproved
	if !approve {
		status = models.PhotoStatusRejected
	}
	if err := s.photoRepo.UpdateStatus(ctx, photoID, status, reviewerID); err != nil {
		return nil, err
	}

	photo.Status = status
	photo.ReviewedBy = &reviewerID

	if !approve {
		if err := s.uploader.Delete(ctx, photo.ObjectKey); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete rejected photo object",
				slog.String("key", photo.ObjectKey), slog.Any("error", err))
		}
		return photo, nil
	}

	photo.URL = s.uploader.GetPublicURL(photo.ObjectKey)
	return photo, nil
}

func (s *galleryService) ListApproved(ctx context.Context) ([]*models.Photo, error) {
	return s.listWithURLs(ctx, models.PhotoStatusApproved)
}

func (s *galleryService) ListPending(ctx context.Context) ([]*models.Photo, error) {
	return s.listWithURLs(ctx, models.PhotoStatusPending)
}

func (s *galleryService) listWithURLs(ctx context.Context, status models.PhotoStatus) ([]*models.Photo, error) {
	photos, err := s.photoRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	for _, photo := range photos {
		photo.URL = s.uploader.GetPublicURL(photo.ObjectKey)
	}
	return photos, nil
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	}
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
		return "." + strings.Split(parts[1], "+")[0], nil
	}
	return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
}
