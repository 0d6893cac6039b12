package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

type NotificationOutput struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Role      string    `json:"role"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListNotificationsInput struct {
	Role     string
	Page     int
	PageSize int
}

type ListNotificationsOutput struct {
	Items    []NotificationOutput `json:"items"`
	Total    int64                `json:"total"`
	Unread   int64                `json:"unread"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

type ListNotifications interface {
	Execute(ctx context.Context, in ListNotificationsInput) (ListNotificationsOutput, error)
}

type listNotifications struct {
	repo domain.NotificationRepository
}

func NewListNotifications(repo domain.NotificationRepository) ListNotifications {
	return &listNotifications{repo: repo}
}

func (uc *listNotifications) Execute(ctx context.Context, in ListNotificationsInput) (ListNotificationsOutput, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !domain.IsValidRole(role) {
		return ListNotificationsOutput{}, ErrInvalidRole
	}

	page, pageSize := normalizePage(in.Page, in.PageSize)
	items, err := uc.repo.ListByRole(ctx, role, pageSize, (page-1)*pageSize)
	if err != nil {
		return ListNotificationsOutput{}, fmt.Errorf("%w: %v", ErrListNotifications, err)
	}
	total, err := uc.repo.CountByRole(ctx, role, false)
	if err != nil {
		return ListNotificationsOutput{}, fmt.Errorf("%w: %v", ErrListNotifications, err)
	}
	unread, err := uc.repo.CountByRole(ctx, role, true)
	if err != nil {
		return ListNotificationsOutput{}, fmt.Errorf("%w: %v", ErrListNotifications, err)
	}

	out := ListNotificationsOutput{
		Items:    make([]NotificationOutput, 0, len(items)),
		Total:    total,
		Unread:   unread,
		Page:     page,
		PageSize: pageSize,
	}
	for _, n := range items {
		out.Items = append(out.Items, NotificationOutput{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Role:      n.Role,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

type MarkNotificationReadInput struct {
	ID string
}

type MarkNotificationRead interface {
	Execute(ctx context.Context, in MarkNotificationReadInput) error
}

type markNotificationRead struct {
	repo domain.NotificationRepository
}

func NewMarkNotificationRead(repo domain.NotificationRepository) MarkNotificationRead {
	return &markNotificationRead{repo: repo}
}

func (uc *markNotificationRead) Execute(ctx context.Context, in MarkNotificationReadInput) error {
	if _, err := uuid.Parse(in.ID); err != nil {
		return ErrInvalidNotificationID
	}
	if err := uc.repo.MarkRead(ctx, in.ID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("%w: %v", ErrUpdateNotification, err)
	}
	return nil
}

type MarkAllNotificationsReadInput struct {
	Role string
}

type MarkAllNotificationsRead interface {
	Execute(ctx context.Context, in MarkAllNotificationsReadInput) error
}

type markAllNotificationsRead struct {
	repo domain.NotificationRepository
}

func NewMarkAllNotificationsRead(repo domain.NotificationRepository) MarkAllNotificationsRead {
	return &markAllNotificationsRead{repo: repo}
}

func (uc *markAllNotificationsRead) Execute(ctx context.Context, in MarkAllNotificationsReadInput) error {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if !domain.IsValidRole(role) {
		return ErrInvalidRole
	}
	if err := uc.repo.MarkAllRead(ctx, role); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateNotification, err)
	}
	return nil
}
