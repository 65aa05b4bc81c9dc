package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campstack/camp-system/models"
)

func TestUploadStoresPendingPhoto(t *testing.T) {
	photoRepo := newFakePhotoRepo()
	uploader := newFakeUploader()
	svc := NewGalleryService(photoRepo, uploader, testLogger())

	photo, err := svc.Upload(context.Background(), 3, "image/jpeg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if photo.Status != models.PhotoStatusPending {
		t.Errorf("status = %s, want pending", photo.Status)
	}
	if !strings.HasPrefix(photo.ObjectKey, "photos/") || !strings.HasSuffix(photo.ObjectKey, ".jpg") {
		t.Errorf("unexpected object key %q", photo.ObjectKey)
	}
	if photo.URL == "" {
		t.Error("upload response should carry the public URL")
	}
	if _, stored := uploader.uploaded[photo.ObjectKey]; !stored {
		t.Error("object was not written to storage")
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := NewGalleryService(newFakePhotoRepo(), newFakeUploader(), testLogger())

	if _, err := svc.Upload(context.Background(), 3, "text/plain", strings.NewReader("nope")); !errors.Is(err, ErrUnsupportedImageType) {
		t.Errorf("expected ErrUnsupportedImageType, got %v", err)
	}
}

func TestReviewApprove(t *testing.T) {
	photoRepo := newFakePhotoRepo()
	uploader := newFakeUploader()
	svc := NewGalleryService(photoRepo, uploader, testLogger())

	photo, err := svc.Upload(context.Background(), 3, "image/png", strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), photo.ID, 9, true)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != models.PhotoStatusApproved {
		t.Errorf("status = %s, want approved", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != 9 {
		t.Errorf("reviewer not recorded: %v", reviewed.ReviewedBy)
	}
	if len(uploader.deleted) != 0 {
		t.Error("approval must not delete the stored object")
	}

	approved, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 1 || approved[0].URL == "" {
		t.Errorf("approved listing = %+v", approved)
	}
}

func TestReviewRejectDeletesObject(t *testing.T) {
	photoRepo := newFakePhotoRepo()
	uploader := newFakeUploader()
	svc := NewGalleryService(photoRepo, uploader, testLogger())

	photo, err := svc.Upload(context.Background(), 3, "image/webp", strings.NewReader("webp bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), photo.ID, 9, false)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != models.PhotoStatusRejected {
		t.Errorf("status = %s, want rejected", reviewed.Status)
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != photo.ObjectKey {
		t.Errorf("rejected object not removed from storage: %v", uploader.deleted)
	}
}

func TestReviewOnlyOnce(t *testing.T) {
	photoRepo := newFakePhotoRepo()
	svc := NewGalleryService(photoRepo, newFakeUploader(), testLogger())

	photo, err := svc.Upload(context.Background(), 3, "image/gif", strings.NewReader("gif bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Review(context.Background(), photo.ID, 9, true); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.Review(context.Background(), photo.ID, 9, false); !errors.Is(err, ErrPhotoAlreadyReviewed) {
		t.Errorf("expected ErrPhotoAlreadyReviewed, got %v", err)
	}
}

func TestReviewUnknownPhoto(t *testing.T) {
	svc := NewGalleryService(newFakePhotoRepo(), newFakeUploader(), testLogger())

	if _, err := svc.Review(context.Background(), 404, 9, true); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestExtensionFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{"image/jpeg", ".jpg", false},
		{"image/png", ".png", false},
		{"image/svg+xml", ".svg", false},
		{"application/pdf", "", true},
		{"garbage", "", true},
	}
	for _, tt := range tests {
		got, err := extensionFromContentType(tt.contentType)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %q", tt.contentType, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %q, %v; want %q", tt.contentType, got, err, tt.want)
		}
	}
}
