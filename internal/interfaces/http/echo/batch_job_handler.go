package echo

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
)

const studentDataField = "studentData"

type BatchJobUseCases struct {
	Submit        app.SubmitBatchJob
	Get           app.GetBatchJob
	List          app.ListBatchJobs
	UpdateStatus  app.UpdateBatchJobStatus
	AssignCredits app.AssignBatchJobCredits
	Rows          app.GetBatchJobRows
	Accounts      app.ListBatchJobAccounts
	Download      app.DownloadBatchJobFile
	Process       app.ProcessBatchJob
}

type BatchJobHandler struct {
	uc BatchJobUseCases
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type assignCreditsRequest struct {
	Credits *int `json:"credits"`
}

func NewBatchJobHandler(uc BatchJobUseCases) *BatchJobHandler {
	return &BatchJobHandler{uc: uc}
}

// Submit accepts a multipart form with name, email, phone, optional credits and an
// optional studentData spreadsheet.
func (h *BatchJobHandler) Submit(c echo.Context) error {
	in := app.SubmitBatchJobInput{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
		Phone: c.FormValue("phone"),
	}

	if raw := strings.TrimSpace(c.FormValue("credits")); raw != "" {
		credits, err := strconv.Atoi(raw)
		if err != nil || credits < 0 {
			return writeError(c, http.StatusBadRequest, "invalid_credits", "credits must be a non-negative integer")
		}
		in.DefaultCredits = credits
	}

	header, err := c.FormFile(studentDataField)
	switch {
	case err == nil:
		file, readErr := readUpload(header)
		if readErr != nil {
			return writeError(c, http.StatusBadRequest, "bad_request", "could not read uploaded file")
		}
		in.File = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid multipart form")
	}

	out, err := h.uc.Submit.Execute(c.Request().Context(), in)
	if err != nil {
		return writeUseCaseError(c, err, "failed to submit batch job")
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *BatchJobHandler) List(c echo.Context) error {
	in := app.ListBatchJobsInput{Status: c.QueryParam("status")}
	if err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("page_size", &in.PageSize).
		BindError(); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "page and page_size must be integers")
	}

	out, err := h.uc.List.Execute(c.Request().Context(), in)
	if err != nil {
		return writeUseCaseError(c, err, "failed to list batch jobs")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) Get(c echo.Context) error {
	out, err := h.uc.Get.Execute(c.Request().Context(), app.GetBatchJobInput{ID: c.Param("id")})
	if err != nil {
		return writeUseCaseError(c, err, "failed to get batch job")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.uc.UpdateStatus.Execute(c.Request().Context(), app.UpdateBatchJobStatusInput{
		ID:     c.Param("id"),
		Status: req.Status,
	})
	if err != nil {
		return writeUseCaseError(c, err, "failed to update batch job status")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) AssignCredits(c echo.Context) error {
	var req assignCreditsRequest
	if err := c.Bind(&req); err != nil || req.Credits == nil {
		return writeError(c, http.StatusBadRequest, "invalid_credits", "credits must be a non-negative integer")
	}

	out, err := h.uc.AssignCredits.Execute(c.Request().Context(), app.AssignBatchJobCreditsInput{
		ID:      c.Param("id"),
		Credits: *req.Credits,
	})
	if err != nil {
		return writeUseCaseError(c, err, "failed to assign credits")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) Rows(c echo.Context) error {
	out, err := h.uc.Rows.Execute(c.Request().Context(), app.GetBatchJobRowsInput{ID: c.Param("id")})
	if err != nil {
		return writeUseCaseError(c, err, "failed to read batch job rows")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) Accounts(c echo.Context) error {
	out, err := h.uc.Accounts.Execute(c.Request().Context(), app.ListBatchJobAccountsInput{ID: c.Param("id")})
	if err != nil {
		return writeUseCaseError(c, err, "failed to list batch job accounts")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *BatchJobHandler) Download(c echo.Context) error {
	out, err := h.uc.Download.Execute(c.Request().Context(), app.DownloadBatchJobFileInput{ID: c.Param("id")})
	if err != nil {
		return writeUseCaseError(c, err, "failed to download batch job file")
	}

	mediaType := out.MediaType
	if mediaType == "" {
		mediaType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Name))
	return c.Blob(http.StatusOK, mediaType, out.Data)
}

// Process runs onboarding synchronously and answers with the run summary. Row level
// failures are part of the summary, not an error status.
func (h *BatchJobHandler) Process(c echo.Context) error {
	out, err := h.uc.Process.Execute(c.Request().Context(), app.ProcessBatchJobInput{ID: c.Param("id")})
	if err != nil {
		return writeUseCaseError(c, err, "failed to process batch job")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func readUpload(header *multipart.FileHeader) (*app.UploadedFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &app.UploadedFile{
		Name:      header.Filename,
		MediaType: header.Header.Get(echo.HeaderContentType),
		Data:      data,
	}, nil
}
