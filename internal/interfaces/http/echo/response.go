package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func writeError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// writeUseCaseError maps application errors to the status codes clients rely on.
// fallback is the message used for unexpected failures. Those are written as a 500 and
// the cause is returned so the request logger records it; echo skips its own error
// handler because the response is already committed.
func writeUseCaseError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, app.ErrInvalidBatchJobID):
		return writeError(c, http.StatusBadRequest, "invalid_batch_job_id", "id must be a valid UUID")
	case errors.Is(err, app.ErrInvalidNotificationID):
		return writeError(c, http.StatusBadRequest, "invalid_notification_id", "id must be a valid UUID")
	case errors.Is(err, app.ErrInvalidSubmission):
		return writeError(c, http.StatusBadRequest, "invalid_submission", err.Error())
	case errors.Is(err, app.ErrInvalidStatus):
		return writeError(c, http.StatusBadRequest, "invalid_status", "status must be pending, active or inactive")
	case errors.Is(err, app.ErrInvalidCredits):
		return writeError(c, http.StatusBadRequest, "invalid_credits", "credits must be a non-negative integer")
	case errors.Is(err, app.ErrInvalidRole):
		return writeError(c, http.StatusBadRequest, "invalid_role", "unknown role")
	case errors.Is(err, app.ErrNoStudentData):
		return writeError(c, http.StatusBadRequest, "no_student_data", "no student data found for this batch job")
	case errors.Is(err, app.ErrInvalidSpreadsheet):
		return writeError(c, http.StatusBadRequest, "invalid_spreadsheet", "student data could not be read")
	case errors.Is(err, app.ErrBatchJobNotFound):
		return writeError(c, http.StatusNotFound, "not_found", "batch job not found")
	case errors.Is(err, app.ErrNotificationNotFound):
		return writeError(c, http.StatusNotFound, "not_found", "notification not found")
	case errors.Is(err, app.ErrBatchJobAlreadyProcessed):
		return writeError(c, http.StatusConflict, "already_processed", "batch job has already been processed")
	case errors.Is(err, app.ErrBatchJobBusy):
		return writeError(c, http.StatusConflict, "processing_in_progress", "batch job is being processed")
	case errors.Is(err, app.ErrSubmitterExists):
		return writeError(c, http.StatusConflict, "submitter_exists", "a batch job for this email already exists")
	case errors.Is(err, app.ErrTooManyRows):
		return writeError(c, http.StatusRequestEntityTooLarge, "too_many_rows", err.Error())
	}

	if writeErr := writeError(c, http.StatusInternalServerError, "internal_error", fallback); writeErr != nil {
		return writeErr
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
