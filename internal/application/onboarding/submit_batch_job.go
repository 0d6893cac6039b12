package onboarding

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

type UploadedFile struct {
	Name      string
	MediaType string
	Data      []byte
}

type SubmitBatchJobInput struct {
	Name           string
	Email          string
	Phone          string
	DefaultCredits int
	File           *UploadedFile
}

type SubmitBatchJob interface {
	Execute(ctx context.Context, in SubmitBatchJobInput) (BatchJobOutput, error)
}

type submitBatchJob struct {
	repo  domain.BatchJobRepository
	codec SpreadsheetCodec
}

func NewSubmitBatchJob(repo domain.BatchJobRepository, codec SpreadsheetCodec) SubmitBatchJob {
	return &submitBatchJob{repo: repo, codec: codec}
}

func (uc *submitBatchJob) Execute(ctx context.Context, in SubmitBatchJobInput) (BatchJobOutput, error) {
	job, err := uc.newBatchJob(in)
	if err != nil {
		return BatchJobOutput{}, err
	}

	created, err := uc.repo.Create(ctx, job)
	if err != nil {
		if errors.Is(err, domain.ErrSubmitterEmailTaken) {
			return BatchJobOutput{}, ErrSubmitterExists
		}
		return BatchJobOutput{}, fmt.Errorf("%w: %v", ErrSubmitBatchJob, err)
	}

	return toBatchJobOutput(created), nil
}

func (uc *submitBatchJob) newBatchJob(in SubmitBatchJobInput) (domain.BatchJob, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" {
		return domain.BatchJob{}, fmt.Errorf("%w: name, email and phone are required", ErrInvalidSubmission)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.BatchJob{}, fmt.Errorf("%w: email is not valid", ErrInvalidSubmission)
	}
	if in.DefaultCredits < 0 {
		return domain.BatchJob{}, ErrInvalidCredits
	}

	job := domain.BatchJob{
		SubmitterName:  name,
		SubmitterEmail: email,
		SubmitterPhone: phone,
		DefaultCredits: in.DefaultCredits,
		State:          domain.StateUnprocessed,
		Status:         domain.StatusPending,
	}

	if in.File != nil {
		if len(in.File.Data) == 0 {
			return domain.BatchJob{}, fmt.Errorf("%w: uploaded file is empty", ErrInvalidSubmission)
		}
		job.File = &domain.File{
			Encoded:   uc.codec.Encode(in.File.Data),
			MediaType: mediaTypeOf(in.File),
			Name:      filepath.Base(in.File.Name),
		}
	}

	return job, nil
}

// mediaTypeOf trusts the declared type unless the client sent a generic one.
func mediaTypeOf(f *UploadedFile) string {
	mediaType := strings.TrimSpace(f.MediaType)
	if mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}
	if strings.EqualFold(filepath.Ext(f.Name), ".csv") {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
