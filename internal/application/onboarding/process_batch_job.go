package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"go.uber.org/zap"
)

type ProcessBatchJobConfig struct {
	MaxRows int
	Timeout time.Duration
	Lease   time.Duration
}

type ProcessBatchJobDeps struct {
	Jobs     domain.BatchJobRepository
	Claims   domain.ProcessingClaimRepository
	Codec    SpreadsheetCodec
	Accounts domain.AccountRepository
	Hasher   PasswordHasher
	Notifier CompletionNotifier
	Logger   *zap.SugaredLogger
}

type ProcessBatchJobInput struct {
	ID string
}

type ProcessBatchJobOutput struct {
	BatchJobID  string    `json:"batch_job_id"`
	ProcessedAt time.Time `json:"processed_at"`
	Summary
}

type ProcessBatchJob interface {
	Execute(ctx context.Context, in ProcessBatchJobInput) (ProcessBatchJobOutput, error)
}

type processBatchJob struct {
	jobs     domain.BatchJobRepository
	claims   domain.ProcessingClaimRepository
	codec    SpreadsheetCodec
	accounts domain.AccountRepository
	notifier CompletionNotifier
	pipeline *rowPipeline
	logger   *zap.SugaredLogger
	cfg      ProcessBatchJobConfig
	now      func() time.Time
}

func NewProcessBatchJob(deps ProcessBatchJobDeps, cfg ProcessBatchJobConfig) ProcessBatchJob {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.Lease < cfg.Timeout {
		cfg.Lease = cfg.Timeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &processBatchJob{
		jobs:     deps.Jobs,
		claims:   deps.Claims,
		codec:    deps.Codec,
		accounts: deps.Accounts,
		notifier: deps.Notifier,
		pipeline: &rowPipeline{
			accounts: deps.Accounts,
			hasher:   deps.Hasher,
			logger:   logger,
		},
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Execute runs the onboarding pipeline for one batch job. Row failures are counted in the
// summary. Decode failures, an unreachable account store and cancellation abort the run and
// leave the job unprocessed.
func (uc *processBatchJob) Execute(ctx context.Context, in ProcessBatchJobInput) (ProcessBatchJobOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	job, err := loadBatchJob(ctx, uc.jobs, in.ID, ErrProcessBatchJob)
	if err != nil {
		return ProcessBatchJobOutput{}, err
	}
	if job.Processed() {
		return ProcessBatchJobOutput{}, ErrBatchJobAlreadyProcessed
	}
	if !job.HasFile() {
		return ProcessBatchJobOutput{}, ErrNoStudentData
	}

	rows, err := uc.codec.Rows(*job.File)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
		}
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrProcessBatchJob, err)
	}
	if len(rows) > uc.cfg.MaxRows {
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(rows), uc.cfg.MaxRows)
	}

	if err := uc.accounts.Ping(ctx); err != nil {
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrAccountStoreUnavailable, err)
	}

	claimed, err := uc.claims.BeginProcessing(ctx, job.ID, uc.cfg.Lease)
	if err != nil {
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrProcessBatchJob, err)
	}
	if !claimed {
		return ProcessBatchJobOutput{}, ErrBatchJobBusy
	}

	uc.logger.Infow("onboarding run started", "batch_job_id", job.ID, "rows", len(rows))

	summary, err := uc.pipeline.run(ctx, job, rows)
	if err != nil {
		uc.release(ctx, job.ID)
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrProcessBatchJob, err)
	}

	processedAt := uc.now().UTC()
	if err := uc.claims.CompleteProcessing(ctx, job.ID, summary.Created, processedAt); err != nil {
		uc.release(ctx, job.ID)
		return ProcessBatchJobOutput{}, fmt.Errorf("%w: %v", ErrProcessBatchJob, err)
	}

	uc.logger.Infow("onboarding run completed",
		"batch_job_id", job.ID,
		"created", summary.Created,
		"skipped", summary.Skipped,
		"errors", summary.ErrorCount,
	)

	if _, err := uc.notifier.Notify(ctx, summary); err != nil {
		uc.logger.Warnw("completion notification failed", "batch_job_id", job.ID, "error", err)
	}

	return ProcessBatchJobOutput{
		BatchJobID:  job.ID,
		ProcessedAt: processedAt,
		Summary:     summary,
	}, nil
}

// release hands the claim back so the job can be retried. It must outlive a cancelled ctx.
func (uc *processBatchJob) release(ctx context.Context, id string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := uc.claims.ReleaseProcessing(releaseCtx, id); err != nil {
		uc.logger.Errorw("release batch job claim failed", "batch_job_id", id, "error", err)
	}
}
