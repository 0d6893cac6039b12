package repository

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type AccountQueryRepository struct {
	db *gorm.DB
}

func NewAccountQueryRepository(db *gorm.DB) *AccountQueryRepository {
	return &AccountQueryRepository{db: db}
}

func (r *AccountQueryRepository) ListByBatchJob(ctx context.Context, batchJobID string) ([]domain.Account, error) {
	var rows []models.Account
	if err := r.db.WithContext(ctx).
		Where("batch_job_id = ?", batchJobID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list accounts by batch job: %w", err)
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, domain.Account{
			ID:                 row.ID,
			Email:              row.Email,
			PasswordHash:       row.PasswordHash,
			Name:               row.Name,
			Phone:              row.Phone,
			Credits:            row.Credits,
			BatchJobID:         textOrEmpty(row.BatchJobID),
			RegistrationMethod: row.RegistrationMethod,
			Verified:           row.Verified,
			Status:             row.Status,
			CreatedAt:          row.CreatedAt,
		})
	}
	return accounts, nil
}
