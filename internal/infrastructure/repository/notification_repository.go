package repository

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	row := models.Notification{
		Title:   n.Title,
		Message: n.Message,
		Type:    n.Type,
		Role:    n.Role,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return toDomainNotification(row), nil
}

func (r *NotificationRepository) ListByRole(ctx context.Context, role string, limit, offset int) ([]domain.Notification, error) {
	var rows []models.Notification
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainNotification(row))
	}
	return out, nil
}

func (r *NotificationRepository) CountByRole(ctx context.Context, role string, unreadOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("role = ?", role)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, role string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("role = ? AND is_read = ?", role, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func toDomainNotification(row models.Notification) domain.Notification {
	return domain.Notification{
		ID:        row.ID,
		Title:     row.Title,
		Message:   row.Message,
		Type:      row.Type,
		Role:      row.Role,
		Read:      row.Read,
		CreatedAt: row.CreatedAt,
	}
}
