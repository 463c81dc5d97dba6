package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"study-abroad-api/models"

	"gorm.io/gorm"
)

// progressByStatus is the single source of truth for the status→progress
// mapping. No other code computes or assigns progress.
var progressByStatus = map[string]int{
	models.StatusDraft:         10,
	models.StatusSubmitted:     20,
	models.StatusUnderReview:   40,
	models.StatusAccepted:      60,
	models.StatusJW202Received: 70,
	models.StatusVisaGranted:   90,
	models.StatusFlightBooked:  95,
	models.StatusCompleted:     100,
	models.StatusRejected:      0,
}

// ProgressFor returns the progress percentage for a status.
func ProgressFor(status string) (int, bool) {
	p, ok := progressByStatus[status]
	return p, ok
}

// Actor identifies who is performing an operation.
type Actor struct {
	UserID  int
	Name    string
	IsAdmin bool
}

// LifecycleService owns application status transitions, their derived
// progress and the side effects of each transition.
type LifecycleService struct {
	fees       *FeeService
	cache      *Cache
	autoReview bool
}

// NewLifecycleService builds the engine. autoReview controls whether a
// UniversityAssigned event also moves the application to UNDER_REVIEW.
func NewLifecycleService(fees *FeeService, cache *Cache, autoReview bool) *LifecycleService {
	return &LifecycleService{fees: fees, cache: cache, autoReview: autoReview}
}

type CreateApplicationInput struct {
	StudentID         int
	Country           string
	DesiredProgram    string
	UniversityID      *int
	FullName          string
	PassportNumber    string
	MedicalConditions string
}

// CreateApplication opens a dossier for a student. The profile update and
// the insert run in one transaction; the duplicate check runs inside the
// same transaction so two concurrent submissions cannot both pass it.
func (s *LifecycleService) CreateApplication(db *gorm.DB, in CreateApplicationInput) (*models.Application, error) {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		return nil, NewValidationError("country", "destination country is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, NewValidationError("full_name", "full name is required")
	}

	fee := s.fees.FeeFor(db, country)
	now := time.Now()
	application := models.Application{
		UserID:         in.StudentID,
		UniversityID:   in.UniversityID,
		Country:        country,
		DesiredProgram: strings.TrimSpace(in.DesiredProgram),
		Status:         models.StatusSubmitted,
		Progress:       progressByStatus[models.StatusSubmitted],
		ApplicationFee: fee,
		CreateAt:       &now,
		UpdateAt:       &now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Duplicate guard: one live dossier per university, or per
		// destination country while no university is assigned.
		dup := tx.Model(&models.Application{}).
			Where("user_id = ? AND status NOT IN ?", in.StudentID,
				[]string{models.StatusCompleted, models.StatusRejected})
		if in.UniversityID != nil {
			dup = dup.Where("university_id = ?", *in.UniversityID)
		} else {
			dup = dup.Where("LOWER(TRIM(country)) = ?", NormalizeCountry(country))
		}
		var count int64
		if err := dup.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return NewConflictError("an application is already in progress for this destination")
		}

		profile := map[string]interface{}{
			"full_name":          strings.TrimSpace(in.FullName),
			"passport_number":    strings.TrimSpace(in.PassportNumber),
			"medical_conditions": strings.TrimSpace(in.MedicalConditions),
			"update_at":          now,
		}
		if err := tx.Model(&models.User{}).
			Where("user_id = ?", in.StudentID).
			Updates(profile).Error; err != nil {
			return err
		}

		if err := tx.Create(&application).Error; err != nil {
			return err
		}

		return LogActivity(tx, models.Activity{
			Type:        models.ActivityAppCreated,
			Title:       "Nouvelle candidature",
			Description: fmt.Sprintf("%s a ouvert un dossier pour %s.", in.FullName, country),
			Actor:       in.FullName,
			Color:       ColorBlue,
			RefID:       fmt.Sprintf("%d", application.ApplicationID),
		})
	})
	if err != nil {
		if IsConflict(err) || IsValidation(err) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(application.ApplicationID, in.StudentID)
	return &application, nil
}

// TransitionStatus moves an application to newStatus and derives its
// progress. This is the only code path allowed to write progress.
func (s *LifecycleService) TransitionStatus(db *gorm.DB, appID int, newStatus string, actor Actor) (*models.Application, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}
	if _, ok := ProgressFor(newStatus); !ok {
		return nil, NewValidationError("status", "unknown status "+newStatus)
	}
	if newStatus == models.StatusRejected {
		// Rejection carries a mandatory reason; it has its own entry point.
		return nil, NewValidationError("status", "rejection requires a reason")
	}

	var application models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("University").
			First(&application, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("application")
			}
			return err
		}

		if application.Status == newStatus {
			return nil
		}

		return s.applyStatus(tx, &application, newStatus, actor)
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) || IsValidation(err) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(application.ApplicationID, application.UserID)
	return &application, nil
}

// applyStatus writes status+progress inside an open transaction and
// performs the transition's side effects.
func (s *LifecycleService) applyStatus(tx *gorm.DB, application *models.Application, newStatus string, actor Actor) error {
	progress := progressByStatus[newStatus]
	now := time.Now()

	if err := tx.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(map[string]interface{}{
			"status":    newStatus,
			"progress":  progress,
			"update_at": now,
		}).Error; err != nil {
		return err
	}
	application.Status = newStatus
	application.Progress = progress
	application.UpdateAt = &now

	if newStatus == models.StatusCompleted {
		universityName := ""
		if application.University != nil {
			universityName = application.University.Name
		}
		return LogActivity(tx, models.Activity{
			Type:        models.ActivityAppCompleted,
			Title:       "Candidature terminée",
			Description: fmt.Sprintf("Le dossier de %s pour %s est terminé.", application.User.FullName, universityName),
			Actor:       actor.Name,
			Color:       ColorGreen,
			RefID:       fmt.Sprintf("%d", application.ApplicationID),
		})
	}
	return nil
}

// Reject closes an application with a mandatory justification.
func (s *LifecycleService) Reject(db *gorm.DB, appID int, reason string, actor Actor) (*models.Application, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}
	reason = strings.TrimSpace(reason)
	if len(reason) < 5 {
		return nil, NewValidationError("reason", "rejection reason must be at least 5 characters")
	}

	var application models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").First(&application, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("application")
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Application{}).
			Where("application_id = ?", application.ApplicationID).
			Updates(map[string]interface{}{
				"status":           models.StatusRejected,
				"progress":         progressByStatus[models.StatusRejected],
				"rejection_reason": reason,
				"update_at":        now,
			}).Error; err != nil {
			return err
		}
		application.Status = models.StatusRejected
		application.Progress = progressByStatus[models.StatusRejected]
		application.RejectionReason = reason
		application.UpdateAt = &now

		return LogActivity(tx, models.Activity{
			Type:        models.ActivityAppRejected,
			Title:       "Candidature rejetée",
			Description: fmt.Sprintf("Le dossier de %s a été rejeté : %s", application.User.FullName, reason),
			Actor:       actor.Name,
			Color:       ColorRed,
			RefID:       fmt.Sprintf("%d", application.ApplicationID),
		})
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(application.ApplicationID, application.UserID)
	return &application, nil
}

// AssignUniversity sets the university reference and emits an explicit
// UniversityAssigned event. When auto-review is configured the engine
// reacts by moving the dossier to UNDER_REVIEW in the same transaction.
func (s *LifecycleService) AssignUniversity(db *gorm.DB, appID, universityID int, actor Actor) (*models.Application, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}

	var application models.Application
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").First(&application, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("application")
			}
			return err
		}

		var university models.University
		if err := tx.Where("university_id = ? AND delete_at IS NULL", universityID).
			First(&university).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("university")
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Application{}).
			Where("application_id = ?", application.ApplicationID).
			Updates(map[string]interface{}{
				"university_id": universityID,
				"update_at":     now,
			}).Error; err != nil {
			return err
		}
		application.UniversityID = &universityID
		application.University = &university

		if err := LogActivity(tx, models.Activity{
			Type:        models.ActivityUniversityAssigned,
			Title:       "Université assignée",
			Description: fmt.Sprintf("%s a été assignée au dossier de %s.", university.Name, application.User.FullName),
			Actor:       actor.Name,
			Color:       ColorBlue,
			RefID:       fmt.Sprintf("%d", application.ApplicationID),
		}); err != nil {
			return err
		}

		if s.autoReview && !application.IsTerminal() && application.Status != models.StatusUnderReview {
			return s.applyStatus(tx, &application, models.StatusUnderReview, actor)
		}
		return nil
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(application.ApplicationID, application.UserID)
	return &application, nil
}

// DeleteApplication removes a dossier. One transaction deletes the child
// documents and the row itself; payments keep their financial history and
// only lose the application reference. Returns the storage keys of the
// removed documents so the caller can clean up blobs best-effort.
func (s *LifecycleService) DeleteApplication(db *gorm.DB, appID int, actor Actor) ([]string, error) {
	if !actor.IsAdmin {
		return nil, ErrNotPermitted
	}

	var keys []string
	var userID int
	err := db.Transaction(func(tx *gorm.DB) error {
		var application models.Application
		if err := tx.First(&application, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("application")
			}
			return err
		}
		userID = application.UserID

		var documents []models.Document
		if err := tx.Where("application_id = ?", appID).Find(&documents).Error; err != nil {
			return err
		}
		for _, doc := range documents {
			keys = append(keys, doc.StorageKey)
		}

		if err := tx.Where("application_id = ?", appID).
			Delete(&models.Document{}).Error; err != nil {
			return err
		}

		// Payments outlive the dossier: keep the rows, drop the reference.
		if err := tx.Model(&models.Payment{}).
			Where("application_id = ?", appID).
			Update("application_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Application{}, appID).Error
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, err
		}
		return nil, NewStorageError(err)
	}

	s.cache.InvalidateApplicationViews(appID, userID)
	return keys, nil
}
