package onboarding

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

type ListBatchJobsInput struct {
	Status   string
	Page     int
	PageSize int
}

type ListBatchJobsOutput struct {
	Items    []BatchJobOutput `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListBatchJobs interface {
	Execute(ctx context.Context, in ListBatchJobsInput) (ListBatchJobsOutput, error)
}

type listBatchJobs struct {
	repo domain.BatchJobRepository
}

func NewListBatchJobs(repo domain.BatchJobRepository) ListBatchJobs {
	return &listBatchJobs{repo: repo}
}

func (uc *listBatchJobs) Execute(ctx context.Context, in ListBatchJobsInput) (ListBatchJobsOutput, error) {
	status := domain.Status(strings.ToLower(strings.TrimSpace(in.Status)))
	if status != "" && !status.IsValid() {
		return ListBatchJobsOutput{}, ErrInvalidStatus
	}

	page, pageSize := normalizePage(in.Page, in.PageSize)
	jobs, total, err := uc.repo.List(ctx, domain.BatchJobFilter{
		Status: status,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return ListBatchJobsOutput{}, fmt.Errorf("%w: %v", ErrListBatchJobs, err)
	}

	items := make([]BatchJobOutput, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, toBatchJobOutput(job))
	}

	return ListBatchJobsOutput{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
