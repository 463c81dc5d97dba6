package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"study-abroad-api/models"
	"study-abroad-api/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDocumentSize is the upload ceiling for supporting documents.
const MaxDocumentSize = 5 << 20 // 5 MiB

// extensionsByType maps each accepted content type to its extension
// allow-list. A mismatched pair is rejected.
var extensionsByType = map[string][]string{
	"application/pdf": {".pdf"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
}

// ValidateUpload checks size, content type and extension before anything
// touches storage. Failures carry field-level messages.
func ValidateUpload(filename, contentType string, size int64) error {
	if size <= 0 {
		return NewValidationError("file", "file is empty")
	}
	if size > MaxDocumentSize {
		return NewValidationError("file", "file exceeds the 5 MiB limit")
	}

	allowed, ok := extensionsByType[contentType]
	if !ok {
		return NewValidationError("file", "only PDF, JPEG and PNG files are accepted")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, candidate := range allowed {
		if ext == candidate {
			return nil
		}
	}
	return NewValidationError("file", "file extension does not match its content type")
}

// DocumentService owns the upload and verification workflow.
type DocumentService struct {
	store storage.Provider
	cache *Cache
}

func NewDocumentService(store storage.Provider, cache *Cache) *DocumentService {
	return &DocumentService{store: store, cache: cache}
}

type UploadInput struct {
	ApplicationID int
	StudentID     int
	Type          string
	Filename      string
	ContentType   string
	Size          int64
	Content       io.Reader
}

// Upload validates the file, stores the blob under a server-generated key
// and inserts the metadata row. If the insert fails after the blob was
// written, the blob is deleted again so storage and database never hold
// an orphaned file.
func (s *DocumentService) Upload(ctx context.Context, db *gorm.DB, in UploadInput) (*models.Document, error) {
	if err := ValidateUpload(in.Filename, in.ContentType, in.Size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, NewValidationError("type", "document type is required")
	}

	var application models.Application
	if err := db.First(&application, in.ApplicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("application")
		}
		return nil, NewStorageError(err)
	}
	if application.UserID != in.StudentID {
		return nil, ErrNotPermitted
	}

	var count int64
	if err := db.Model(&models.Document{}).
		Where("application_id = ? AND name = ?", in.ApplicationID, in.Filename).
		Count(&count).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if count > 0 {
		return nil, NewConflictError("a document with this name already exists on the application")
	}

	// Never the user-supplied filename: a fresh key under the dossier's
	// prefix prevents traversal and overwrites.
	ext := strings.ToLower(filepath.Ext(in.Filename))
	key := fmt.Sprintf("applications/%d/%s%s", in.ApplicationID, uuid.NewString(), ext)

	url, err := s.store.Put(ctx, key, in.Content, in.ContentType)
	if err != nil {
		return nil, NewStorageError(err)
	}

	now := time.Now()
	document := models.Document{
		ApplicationID: in.ApplicationID,
		Type:          strings.TrimSpace(in.Type),
		Name:          in.Filename,
		StorageKey:    key,
		URL:           url,
		Status:        models.DocumentPending,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := db.Create(&document).Error; err != nil {
		// Compensate: the blob must not outlive a failed insert.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("orphan blob %s could not be removed: %v", key, delErr)
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(in.ApplicationID, in.StudentID)
	return &document, nil
}

// Verify records an admin decision on a pending document.
func (s *DocumentService) Verify(db *gorm.DB, documentID int, newStatus string, actor Actor, comment string) (*models.Document, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}
	if newStatus != models.DocumentApproved && newStatus != models.DocumentRejected {
		return nil, NewValidationError("status", "status must be APPROVED or REJECTED")
	}

	var document models.Document
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Application").First(&document, documentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("document")
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Document{}).
			Where("document_id = ?", documentID).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"verified_by": actor.UserID,
				"comment":     strings.TrimSpace(comment),
				"update_at":   now,
			}).Error; err != nil {
			return err
		}
		document.Status = newStatus
		document.VerifiedBy = &actor.UserID
		document.Comment = strings.TrimSpace(comment)
		document.UpdateAt = &now

		return LogActivity(tx, models.Activity{
			Type:        models.ActivityDocumentVerified,
			Title:       fmt.Sprintf("Document %s", strings.ToLower(newStatus)),
			Description: fmt.Sprintf("Le document %s a été %s.", document.Name, strings.ToLower(newStatus)),
			Actor:       actor.Name,
			Color:       ColorGreen,
			RefID:       fmt.Sprintf("%d", documentID),
		})
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) || IsValidation(err) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(document.ApplicationID, document.Application.UserID)
	return &document, nil
}
