package onboarding

import (
	"context"
	"time"
)

type BatchJobFilter struct {
	Status Status
	Limit  int
	Offset int
}

type BatchJobRepository interface {
	Create(ctx context.Context, job BatchJob) (BatchJob, error)
	GetByID(ctx context.Context, id string) (*BatchJob, error)
	List(ctx context.Context, filter BatchJobFilter) ([]BatchJob, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateDefaultCredits(ctx context.Context, id string, credits int) error
}

// ProcessingClaimRepository moves a batch job through its ProcessingState with
// conditional updates, so two runs can never hold the same job.
type ProcessingClaimRepository interface {
	BeginProcessing(ctx context.Context, id string, lease time.Duration) (bool, error)
	CompleteProcessing(ctx context.Context, id string, createdCount int, processedAt time.Time) error
	ReleaseProcessing(ctx context.Context, id string) error
}

// AccountRepository must enforce email uniqueness itself and report a duplicate as ErrEmailConflict.
// CreateWithProfile stores both rows or neither.
type AccountRepository interface {
	Ping(ctx context.Context) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	CreateWithProfile(ctx context.Context, account Account) (Account, Profile, error)
}

type AccountQueryRepository interface {
	ListByBatchJob(ctx context.Context, batchJobID string) ([]Account, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]Notification, error)
	CountByRole(ctx context.Context, role string, unreadOnly bool) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, role string) error
}
