package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BatchJobOutput struct {
	ID              string     `json:"id"`
	SubmitterName   string     `json:"name"`
	SubmitterEmail  string     `json:"email"`
	SubmitterPhone  string     `json:"phone"`
	DefaultCredits  int        `json:"credits"`
	Status          string     `json:"status"`
	ProcessingState string     `json:"processing_state"`
	Processed       bool       `json:"processed"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedCount    int        `json:"created_count"`
	HasFile         bool       `json:"has_file"`
	FileName        string     `json:"file_name,omitempty"`
	FileType        string     `json:"file_type,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toBatchJobOutput(job domain.BatchJob) BatchJobOutput {
	out := BatchJobOutput{
		ID:              job.ID,
		SubmitterName:   job.SubmitterName,
		SubmitterEmail:  job.SubmitterEmail,
		SubmitterPhone:  job.SubmitterPhone,
		DefaultCredits:  job.DefaultCredits,
		Status:          string(job.Status),
		ProcessingState: string(job.State),
		Processed:       job.Processed(),
		HasFile:         job.HasFile(),
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
	if out.Processed {
		out.ProcessedAt = job.ProcessedAt
		out.CreatedCount = job.CreatedCount
	}
	if job.HasFile() {
		out.FileName = job.File.Name
		out.FileType = job.File.MediaType
	}
	return out
}

func validateBatchJobID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidBatchJobID
	}
	return nil
}

// loadBatchJob validates id and fetches the job, mapping store errors onto wrapErr.
func loadBatchJob(ctx context.Context, repo domain.BatchJobRepository, id string, wrapErr error) (domain.BatchJob, error) {
	if err := validateBatchJobID(id); err != nil {
		return domain.BatchJob{}, err
	}

	job, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBatchJobNotFound) {
			return domain.BatchJob{}, ErrBatchJobNotFound
		}
		return domain.BatchJob{}, fmt.Errorf("%w: %v", wrapErr, err)
	}
	return *job, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
