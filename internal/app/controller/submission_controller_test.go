package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youvit/gramedia-display-backend/internal/app/model"
	"github.com/youvit/gramedia-display-backend/internal/app/service"
)

// fakeSubmissionService records the input it received and returns a canned
// record or error.
type fakeSubmissionService struct {
	input  service.SubmissionInput
	record *model.SubmissionRecord
	err    error
}

func (f *fakeSubmissionService) Submit(ctx context.Context, input service.SubmissionInput) (*model.SubmissionRecord, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	if f.record != nil {
		return f.record, nil
	}
	return &model.SubmissionRecord{
		StoreName:    input.StoreName,
		EmployeeName: input.EmployeeName,
		Status:       model.StatusSubmitted,
	}, nil
}

func setupSubmissionControllerTest(t *testing.T) (*fakeSubmissionService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	svc := &fakeSubmissionService{}
	router := gin.New()
	router.POST("/submissions", NewSubmissionController(svc).Create)
	return svc, router
}

type formPhoto struct {
	field       string
	filename    string
	contentType string
}

func buildSubmissionForm(t *testing.T, fields map[string]string, photos []formPhoto) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, photo := range photos {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, photo.field, photo.filename))
		header.Set("Content-Type", photo.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func allPhotos() []formPhoto {
	return []formPhoto{
		{field: "education_photo", filename: "education.jpg", contentType: "image/jpeg"},
		{field: "poster_photo", filename: "poster.png", contentType: "image/png"},
		{field: "display_competition_photo", filename: "display.jpg", contentType: "image/jpeg"},
	}
}

func TestSubmissionController_Create_Success(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name":    "Main Store",
		"employee_name": "Jane Doe",
		"participation": "Yes",
		"date":          "2026-08-15",
		"new_store":     "true",
	}, allPhotos())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "Main Store", svc.input.StoreName)
	assert.Equal(t, "Jane Doe", svc.input.EmployeeName)
	assert.Equal(t, "Yes", svc.input.Participation)
	assert.True(t, svc.input.NewStore)
	assert.False(t, svc.input.NewEmployee)
	assert.Equal(t, "2026-08-15", svc.input.Date.Format(model.DateLayout))
	assert.NotEmpty(t, svc.input.EducationPhoto)
	assert.NotEmpty(t, svc.input.PosterPhoto)
	assert.NotEmpty(t, svc.input.DisplayPhoto)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Entry submitted successfully", response["message"])
}

func TestSubmissionController_Create_NonPublicPhotosWarned(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)
	svc.record = &model.SubmissionRecord{
		StoreName:       "Main Store",
		EmployeeName:    "Jane Doe",
		Status:          model.StatusSubmitted,
		NonPublicPhotos: []string{"poster"},
	}

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name":    "Main Store",
		"employee_name": "Jane Doe",
		"participation": "Yes",
	}, allPhotos())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["warning"], "poster")

	record := response["record"].(map[string]interface{})
	assert.Equal(t, []interface{}{"poster"}, record["non_public_photos"])
}

func TestSubmissionController_Create_MissingPhotosPassedAsNil(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name":    "Main Store",
		"employee_name": "Jane Doe",
		"participation": "No",
	}, []formPhoto{
		{field: "education_photo", filename: "education.jpg", contentType: "image/jpeg"},
	})

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// the builder decides whether missing photos are an error
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, svc.input.EducationPhoto)
	assert.Nil(t, svc.input.PosterPhoto)
	assert.Nil(t, svc.input.DisplayPhoto)
}

func TestSubmissionController_Create_ValidationErrorsListed(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)
	svc.err = service.ValidationErrors{
		"Store name is required",
		"Poster photo is required",
	}

	body, contentType := buildSubmissionForm(t, map[string]string{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errs := response["errors"].([]interface{})
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "Store name is required")
}

func TestSubmissionController_Create_InvalidDateRejected(t *testing.T) {
	_, router := setupSubmissionControllerTest(t)

	body, contentType := buildSubmissionForm(t, map[string]string{
		"date": "15-08-2026",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_INVALID_DATE", response["error"])
}

func TestSubmissionController_Create_RejectsNonImageUpload(t *testing.T) {
	_, router := setupSubmissionControllerTest(t)

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name": "Main Store",
	}, []formPhoto{
		{field: "education_photo", filename: "notes.pdf", contentType: "application/pdf"},
	})

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "IMAGE_INVALID_FILE_TYPE", response["error"])
}

func TestSubmissionController_Create_UploadFailureIsBadGateway(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)
	svc.err = &service.UploadError{
		Role: model.PhotoRolePoster,
		Err:  fmt.Errorf("bucket unavailable"),
	}

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name":    "Main Store",
		"employee_name": "Jane Doe",
		"participation": "Yes",
	}, allPhotos())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "UPLOAD_FAILED", response["error"])
	assert.Contains(t, response["message"], "poster")
}

func TestSubmissionController_Create_ProcessingFailureIsUnprocessable(t *testing.T) {
	svc, router := setupSubmissionControllerTest(t)
	svc.err = &service.ImageProcessingError{
		Role: model.PhotoRoleEducation,
		Err:  fmt.Errorf("image: unknown format"),
	}

	body, contentType := buildSubmissionForm(t, map[string]string{
		"store_name":    "Main Store",
		"employee_name": "Jane Doe",
		"participation": "Yes",
	}, allPhotos())

	req := httptest.NewRequest(http.MethodPost, "/submissions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "IMAGE_PROCESSING_FAILED", response["error"])
}
