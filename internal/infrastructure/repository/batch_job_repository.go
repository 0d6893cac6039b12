package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type BatchJobRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBatchJobRepository(db *gorm.DB) *BatchJobRepository {
	return &BatchJobRepository{db: db, now: time.Now}
}

func (r *BatchJobRepository) Create(ctx context.Context, job domain.BatchJob) (domain.BatchJob, error) {
	row := models.BatchJob{
		SubmitterName:   job.SubmitterName,
		SubmitterEmail:  job.SubmitterEmail,
		SubmitterPhone:  job.SubmitterPhone,
		DefaultCredits:  job.DefaultCredits,
		ProcessingState: string(domain.StateUnprocessed),
		Status:          string(domain.StatusPending),
	}
	if job.Status != "" {
		row.Status = string(job.Status)
	}
	if job.HasFile() {
		row.FileData = &job.File.Encoded
		row.FileName = nullableText(job.File.Name)
		row.FileType = nullableText(job.File.MediaType)
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.BatchJob{}, domain.ErrSubmitterEmailTaken
		}
		return domain.BatchJob{}, fmt.Errorf("create batch job: %w", err)
	}

	return toDomainBatchJob(row), nil
}

func (r *BatchJobRepository) GetByID(ctx context.Context, id string) (*domain.BatchJob, error) {
	var row models.BatchJob
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchJobNotFound
		}
		return nil, fmt.Errorf("get batch job: %w", err)
	}

	job := toDomainBatchJob(row)
	return &job, nil
}

func (r *BatchJobRepository) List(ctx context.Context, filter domain.BatchJobFilter) ([]domain.BatchJob, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BatchJob{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count batch jobs: %w", err)
	}

	var rows []models.BatchJob
	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list batch jobs: %w", err)
	}

	jobs := make([]domain.BatchJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, toDomainBatchJob(row))
	}
	return jobs, total, nil
}

func (r *BatchJobRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": r.now()})
	if res.Error != nil {
		return fmt.Errorf("update batch job status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBatchJobNotFound
	}
	return nil
}

// UpdateDefaultCredits only applies while the job has not started processing.
func (r *BatchJobRepository) UpdateDefaultCredits(ctx context.Context, id string, credits int) error {
	res := r.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ? AND processing_state = ?", id, string(domain.StateUnprocessed)).
		Updates(map[string]any{"default_credits": credits, "updated_at": r.now()})
	if res.Error != nil {
		return fmt.Errorf("update batch job credits: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, id)
	}
	return nil
}

// sourceStates turns the allowed predecessors of next into the WHERE clause values, so every
// transition below is guarded by ProcessingState.CanTransitionTo.
func sourceStates(next domain.ProcessingState) []string {
	sources := domain.SourcesOf(next)
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, string(s))
	}
	return out
}

// BeginProcessing also takes over a processing claim whose lease has expired.
func (r *BatchJobRepository) BeginProcessing(ctx context.Context, id string, lease time.Duration) (bool, error) {
	now := r.now()
	res := r.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ? AND (processing_state IN ? OR (processing_state = ? AND lease_expires_at < ?))",
			id, sourceStates(domain.StateProcessing), string(domain.StateProcessing), now).
		Updates(map[string]any{
			"processing_state": string(domain.StateProcessing),
			"lease_expires_at": now.Add(lease),
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("claim batch job: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *BatchJobRepository) CompleteProcessing(ctx context.Context, id string, createdCount int, processedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ? AND processing_state IN ?", id, sourceStates(domain.StateProcessed)).
		Updates(map[string]any{
			"processing_state": string(domain.StateProcessed),
			"processed_at":     processedAt,
			"created_count":    createdCount,
			"lease_expires_at": nil,
			"updated_at":       r.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("complete batch job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, id)
	}
	return nil
}

func (r *BatchJobRepository) ReleaseProcessing(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&models.BatchJob{}).
		Where("id = ? AND processing_state IN ?", id, sourceStates(domain.StateUnprocessed)).
		Updates(map[string]any{
			"processing_state": string(domain.StateUnprocessed),
			"lease_expires_at": nil,
			"updated_at":       r.now(),
		})
	if res.Error != nil {
		return fmt.Errorf("release batch job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, id)
	}
	return nil
}

func (r *BatchJobRepository) missingOrState(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BatchJob{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check batch job: %w", err)
	}
	if count == 0 {
		return domain.ErrBatchJobNotFound
	}
	return domain.ErrInvalidStateTransition
}

func toDomainBatchJob(row models.BatchJob) domain.BatchJob {
	job := domain.BatchJob{
		ID:             row.ID,
		SubmitterName:  row.SubmitterName,
		SubmitterEmail: row.SubmitterEmail,
		SubmitterPhone: row.SubmitterPhone,
		DefaultCredits: row.DefaultCredits,
		State:          domain.ProcessingState(row.ProcessingState),
		CreatedCount:   row.CreatedCount,
		Status:         domain.Status(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if job.State == domain.StateProcessed {
		job.ProcessedAt = row.ProcessedAt
	}
	if row.FileData != nil && *row.FileData != "" {
		job.File = &domain.File{
			Encoded:   *row.FileData,
			MediaType: textOrEmpty(row.FileType),
			Name:      textOrEmpty(row.FileName),
		}
	}
	return job
}
