package controller

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youvit/gramedia-display-backend/internal/app/model"
	"github.com/youvit/gramedia-display-backend/internal/app/service"
	apperrors "github.com/youvit/gramedia-display-backend/internal/errors"
	"github.com/youvit/gramedia-display-backend/internal/middleware"
)

// Only JPEG/PNG uploads are accepted; everything is re-encoded as JPEG.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type SubmissionController struct {
	submissionService service.SubmissionService
}

func NewSubmissionController(submissionService service.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// Create handles one display competition entry.
// POST /api/v1/submissions (multipart/form-data)
func (ctrl *SubmissionController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input := service.SubmissionInput{
		StoreName:              c.PostForm("store_name"),
		EmployeeName:           c.PostForm("employee_name"),
		NewStore:               strings.EqualFold(c.PostForm("new_store"), "true"),
		NewEmployee:            strings.EqualFold(c.PostForm("new_employee"), "true"),
		Participation:          c.PostForm("participation"),
		NonParticipationReason: c.PostForm("non_participation_reason"),
	}

	if dateStr := c.PostForm("date"); dateStr != "" {
		date, err := time.Parse(model.DateLayout, dateStr)
		if err != nil {
			log.Warn("Invalid entry date", map[string]interface{}{
				"date": dateStr,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Date must be in YYYY-MM-DD format")
			return
		}
		input.Date = date
	}

	var ok bool
	if input.EducationPhoto, ok = readFormPhoto(c, "education_photo"); !ok {
		return
	}
	if input.PosterPhoto, ok = readFormPhoto(c, "poster_photo"); !ok {
		return
	}
	if input.DisplayPhoto, ok = readFormPhoto(c, "display_competition_photo"); !ok {
		return
	}

	record, err := ctrl.submissionService.Submit(c.Request.Context(), input)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	log.Info("Submission accepted", map[string]interface{}{
		"store":         record.StoreName,
		"employee":      record.EmployeeName,
		"participation": record.Participation,
	})

	response := gin.H{
		"record":  record,
		"message": "Entry submitted successfully",
	}
	if len(record.NonPublicPhotos) > 0 {
		response["warning"] = "Some photos were saved but are not publicly accessible: " +
			strings.Join(record.NonPublicPhotos, ", ")
	}
	c.JSON(http.StatusCreated, response)
}

// respondSubmissionError maps each pipeline stage failure to a response.
func respondSubmissionError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		log.Warn("Submission validation failed", map[string]interface{}{
			"errors": []string(verrs),
		})
		apperrors.RespondWithValidationErrors(c, verrs)
		return
	}

	var perr *service.ImageProcessingError
	if errors.As(err, &perr) {
		log.Warn("Photo processing failed", map[string]interface{}{
			"role":  perr.Role,
			"error": perr.Err.Error(),
		})
		apperrors.UnprocessableEntity(c, apperrors.ImageProcessingFailed,
			"The "+roleLabel(perr.Role)+" photo could not be processed. Please upload a valid JPEG or PNG image")
		return
	}

	var uerr *service.UploadError
	if errors.As(err, &uerr) {
		log.Error("Photo upload failed", uerr.Err, map[string]interface{}{
			"role": uerr.Role,
		})
		apperrors.BadGateway(c, apperrors.UploadFailed,
			"The "+roleLabel(uerr.Role)+" photo could not be uploaded. Please try again")
		return
	}

	var aerr *service.AppendError
	if errors.As(err, &aerr) {
		log.Error("Record append failed after uploads", aerr.Err, nil)
		apperrors.BadGateway(c, apperrors.AppendFailed,
			"Photos were uploaded but the entry could not be saved. Please submit again")
		return
	}

	log.Error("Submission failed", err, nil)
	apperrors.InternalError(c, "")
}

func roleLabel(role model.PhotoRole) string {
	switch role {
	case model.PhotoRoleEducation:
		return "education"
	case model.PhotoRolePoster:
		return "poster"
	case model.PhotoRoleDisplayCompetition:
		return "display competition"
	default:
		return string(role)
	}
}

// readFormPhoto reads an optional multipart photo. A missing file is not an
// error here; the builder reports required photos in the consolidated
// validation list. Returns ok=false when a response was already written.
func readFormPhoto(c *gin.Context, field string) ([]byte, bool) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		log.Warn("Failed to read uploaded file", map[string]interface{}{
			"field": field,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Could not read uploaded file "+field)
		return nil, false
	}

	if !photoTypeAllowed(header) {
		log.Warn("Rejected upload with unsupported type", map[string]interface{}{
			"field":        field,
			"content_type": header.Header.Get("Content-Type"),
			"filename":     header.Filename,
		})
		apperrors.BadRequest(c, apperrors.ImageInvalidFileType, "Only JPEG and PNG images are allowed")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Could not read uploaded file "+field)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Could not read uploaded file "+field)
		return nil, false
	}
	return data, true
}

func photoTypeAllowed(header *multipart.FileHeader) bool {
	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if contentType != "" {
		return allowedPhotoTypes[contentType]
	}
	// fall back to the extension when the client sent no content type
	name := strings.ToLower(header.Filename)
	return strings.HasSuffix(name, ".jpg") || strings.HasSuffix(name, ".jpeg") || strings.HasSuffix(name, ".png")
}
