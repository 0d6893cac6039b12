package onboarding

import (
	"context"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

type GetBatchJobInput struct {
	ID string
}

type GetBatchJob interface {
	Execute(ctx context.Context, in GetBatchJobInput) (BatchJobOutput, error)
}

type getBatchJob struct {
	repo domain.BatchJobRepository
}

func NewGetBatchJob(repo domain.BatchJobRepository) GetBatchJob {
	return &getBatchJob{repo: repo}
}

func (uc *getBatchJob) Execute(ctx context.Context, in GetBatchJobInput) (BatchJobOutput, error) {
	job, err := loadBatchJob(ctx, uc.repo, in.ID, ErrGetBatchJob)
	if err != nil {
		return BatchJobOutput{}, err
	}
	return toBatchJobOutput(job), nil
}
