package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

type UpdateBatchJobStatusInput struct {
	ID     string
	Status string
}

type UpdateBatchJobStatus interface {
	Execute(ctx context.Context, in UpdateBatchJobStatusInput) (BatchJobOutput, error)
}

type updateBatchJobStatus struct {
	repo domain.BatchJobRepository
}

func NewUpdateBatchJobStatus(repo domain.BatchJobRepository) UpdateBatchJobStatus {
	return &updateBatchJobStatus{repo: repo}
}

func (uc *updateBatchJobStatus) Execute(ctx context.Context, in UpdateBatchJobStatusInput) (BatchJobOutput, error) {
	if err := validateBatchJobID(in.ID); err != nil {
		return BatchJobOutput{}, err
	}
	status := domain.Status(strings.ToLower(strings.TrimSpace(in.Status)))
	if !status.IsValid() {
		return BatchJobOutput{}, ErrInvalidStatus
	}

	if err := uc.repo.UpdateStatus(ctx, in.ID, status); err != nil {
		if errors.Is(err, domain.ErrBatchJobNotFound) {
			return BatchJobOutput{}, ErrBatchJobNotFound
		}
		return BatchJobOutput{}, fmt.Errorf("%w: %v", ErrUpdateBatchJob, err)
	}

	job, err := loadBatchJob(ctx, uc.repo, in.ID, ErrUpdateBatchJob)
	if err != nil {
		return BatchJobOutput{}, err
	}
	return toBatchJobOutput(job), nil
}

type AssignBatchJobCreditsInput struct {
	ID      string
	Credits int
}

type AssignBatchJobCredits interface {
	Execute(ctx context.Context, in AssignBatchJobCreditsInput) (BatchJobOutput, error)
}

type assignBatchJobCredits struct {
	repo domain.BatchJobRepository
}

func NewAssignBatchJobCredits(repo domain.BatchJobRepository) AssignBatchJobCredits {
	return &assignBatchJobCredits{repo: repo}
}

// Execute changes the default credits of a job that has not been processed yet.
func (uc *assignBatchJobCredits) Execute(ctx context.Context, in AssignBatchJobCreditsInput) (BatchJobOutput, error) {
	if in.Credits < 0 {
		return BatchJobOutput{}, ErrInvalidCredits
	}

	job, err := loadBatchJob(ctx, uc.repo, in.ID, ErrUpdateBatchJob)
	if err != nil {
		return BatchJobOutput{}, err
	}
	if job.Processed() {
		return BatchJobOutput{}, ErrBatchJobAlreadyProcessed
	}

	if err := uc.repo.UpdateDefaultCredits(ctx, in.ID, in.Credits); err != nil {
		switch {
		case errors.Is(err, domain.ErrBatchJobNotFound):
			return BatchJobOutput{}, ErrBatchJobNotFound
		case errors.Is(err, domain.ErrInvalidStateTransition):
			return BatchJobOutput{}, ErrBatchJobBusy
		}
		return BatchJobOutput{}, fmt.Errorf("%w: %v", ErrUpdateBatchJob, err)
	}

	job.DefaultCredits = in.Credits
	return toBatchJobOutput(job), nil
}
