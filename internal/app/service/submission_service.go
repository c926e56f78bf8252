package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/youvit/gramedia-display-backend/internal/app/model"
	"github.com/youvit/gramedia-display-backend/internal/app/repository"
	"github.com/youvit/gramedia-display-backend/internal/imgproc"
	"github.com/youvit/gramedia-display-backend/internal/storage"
	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

// Validation messages shown to the user. All failures are collected and
// reported together, never one at a time.
const (
	msgStoreRequired         = "Store name is required"
	msgEmployeeRequired      = "Employee name is required"
	msgEducationRequired     = "Education photo is required"
	msgPosterRequired        = "Poster photo is required"
	msgParticipationRequired = "Please select participation status"
	msgDisplayRequired       = "Display competition photo is required when participating"
	msgReasonRequired        = "Reason is required when not participating"
)

// ValidationErrors is the consolidated list of user-correctable failures.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

// ImageProcessingError marks a decode/transform/encode failure for one
// photo. The submission aborts; no placeholder is substituted.
type ImageProcessingError struct {
	Role model.PhotoRole
	Err  error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("processing %s photo: %v", e.Role, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// UploadError marks an object store rejection for one photo. The
// submission aborts before any row is appended.
type UploadError struct {
	Role model.PhotoRole
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s photo: %v", e.Role, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// AppendError marks a sink rejection after the photos were already
// uploaded. Record carries the orphaned photo URLs; they are not
// reconciled.
type AppendError struct {
	Record *model.SubmissionRecord
	Err    error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("appending record: %v", e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }

// PhotoUploader persists one normalized photo and returns its public
// reference. Satisfied by storage.PhotoStorage.
type PhotoUploader interface {
	Upload(ctx context.Context, data []byte, store, employee, role string) (*storage.UploadResult, error)
}

// SubmissionInput is the raw form state handed to the builder. Photo
// fields hold the original uploaded bytes; nil means not provided.
type SubmissionInput struct {
	StoreName    string
	EmployeeName string
	NewStore     bool
	NewEmployee  bool

	// Date is the user-selected entry date; the zero value defaults to
	// the current date.
	Date time.Time

	Participation          string
	NonParticipationReason string

	EducationPhoto []byte
	PosterPhoto    []byte
	DisplayPhoto   []byte
}

// SubmissionService validates form state, runs the photo ingestion
// pipeline and appends the finished record to the sink.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (*model.SubmissionRecord, error)
}

type submissionService struct {
	recordRepo repository.RecordRepository
	catalog    CatalogService
	uploader   PhotoUploader
}

func NewSubmissionService(recordRepo repository.RecordRepository, catalog CatalogService, uploader PhotoUploader) SubmissionService {
	return &submissionService{
		recordRepo: recordRepo,
		catalog:    catalog,
		uploader:   uploader,
	}
}

// Submit runs one submission end to end: validate, register new catalog
// entries, normalize and upload photos, append the row. Once uploads begin
// the flow runs to completion or failure; a failure after upload leaves
// orphaned objects behind (surfaced, not cleaned up).
func (s *submissionService) Submit(ctx context.Context, input SubmissionInput) (*model.SubmissionRecord, error) {
	storeName := strings.TrimSpace(input.StoreName)
	employeeName := strings.TrimSpace(input.EmployeeName)

	if errs := validate(input); len(errs) > 0 {
		logger.Debug("Submission rejected by validation", map[string]interface{}{
			"store":    storeName,
			"employee": employeeName,
			"errors":   len(errs),
		})
		return nil, errs
	}

	participation := model.Participation(input.Participation)

	if input.NewStore {
		if err := s.catalog.AddStore(ctx, storeName); err != nil {
			return nil, fmt.Errorf("add store %q to catalog: %w", storeName, err)
		}
	}
	if input.NewEmployee {
		if err := s.catalog.AddEmployee(ctx, employeeName); err != nil {
			return nil, fmt.Errorf("add employee %q to catalog: %w", employeeName, err)
		}
	}

	var nonPublic []string
	trackVisibility := func(result *storage.UploadResult, role model.PhotoRole) {
		if !result.Public {
			nonPublic = append(nonPublic, string(role))
		}
	}

	education, err := s.ingestPhoto(ctx, input.EducationPhoto, storeName, employeeName, model.PhotoRoleEducation)
	if err != nil {
		return nil, err
	}
	trackVisibility(education, model.PhotoRoleEducation)

	poster, err := s.ingestPhoto(ctx, input.PosterPhoto, storeName, employeeName, model.PhotoRolePoster)
	if err != nil {
		return nil, err
	}
	trackVisibility(poster, model.PhotoRolePoster)

	displayURL := ""
	if participation == model.ParticipationYes {
		display, err := s.ingestPhoto(ctx, input.DisplayPhoto, storeName, employeeName, model.PhotoRoleDisplayCompetition)
		if err != nil {
			return nil, err
		}
		trackVisibility(display, model.PhotoRoleDisplayCompetition)
		displayURL = display.URL
	}

	entryDate := input.Date
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	reason := ""
	if participation == model.ParticipationNo {
		reason = strings.TrimSpace(input.NonParticipationReason)
	}

	record := &model.SubmissionRecord{
		StoreName:              storeName,
		EmployeeName:           employeeName,
		Date:                   entryDate.Format(model.DateLayout),
		EducationPhotoURL:      education.URL,
		PosterPhotoURL:         poster.URL,
		Participation:          participation,
		DisplayPhotoURL:        displayURL,
		NonParticipationReason: reason,
		SubmittedAt:            time.Now().Format(model.TimestampLayout),
		Status:                 model.StatusSubmitted,
		NonPublicPhotos:        nonPublic,
	}

	if len(nonPublic) > 0 {
		logger.Warn("Submission photos stored but not publicly readable", map[string]interface{}{
			"store":    storeName,
			"employee": employeeName,
			"roles":    nonPublic,
		})
	}

	if err := s.recordRepo.Append(ctx, record); err != nil {
		logger.Error("Record append failed, uploaded photos orphaned", err, map[string]interface{}{
			"store":     record.StoreName,
			"employee":  record.EmployeeName,
			"education": record.EducationPhotoURL,
			"poster":    record.PosterPhotoURL,
			"display":   record.DisplayPhotoURL,
		})
		return nil, &AppendError{Record: record, Err: err}
	}

	logger.Info("Submission recorded", map[string]interface{}{
		"store":         record.StoreName,
		"employee":      record.EmployeeName,
		"date":          record.Date,
		"participation": record.Participation,
	})
	return record, nil
}

// ingestPhoto normalizes one photo and uploads it, mapping each stage to
// its own failure type. The returned result may carry Public=false, which
// the caller surfaces on the record.
func (s *submissionService) ingestPhoto(ctx context.Context, data []byte, store, employee string, role model.PhotoRole) (*storage.UploadResult, error) {
	normalized, err := imgproc.Normalize(data)
	if err != nil {
		return nil, &ImageProcessingError{Role: role, Err: err}
	}

	result, err := s.uploader.Upload(ctx, normalized, store, employee, string(role))
	if err != nil {
		return nil, &UploadError{Role: role, Err: err}
	}
	return result, nil
}

// validate collects every failed rule so the user sees all missing fields
// at once.
func validate(input SubmissionInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.StoreName) == "" {
		errs = append(errs, msgStoreRequired)
	}
	if strings.TrimSpace(input.EmployeeName) == "" {
		errs = append(errs, msgEmployeeRequired)
	}
	if len(input.EducationPhoto) == 0 {
		errs = append(errs, msgEducationRequired)
	}
	if len(input.PosterPhoto) == 0 {
		errs = append(errs, msgPosterRequired)
	}

	switch model.Participation(input.Participation) {
	case model.ParticipationYes:
		if len(input.DisplayPhoto) == 0 {
			errs = append(errs, msgDisplayRequired)
		}
	case model.ParticipationNo:
		if strings.TrimSpace(input.NonParticipationReason) == "" {
			errs = append(errs, msgReasonRequired)
		}
	default:
		errs = append(errs, msgParticipationRequired)
	}

	return errs
}
