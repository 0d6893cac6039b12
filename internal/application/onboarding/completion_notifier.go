package onboarding

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

const completionTitle = "Candidates Registered Successfully"

type CompletionNotifier interface {
	Notify(ctx context.Context, summary Summary) (domain.Notification, error)
}

type completionNotifier struct {
	repo domain.NotificationRepository
}

func NewCompletionNotifier(repo domain.NotificationRepository) CompletionNotifier {
	return &completionNotifier{repo: repo}
}

// Notify records one admin notification per run. Failures wrap domain.ErrNotification.
func (n *completionNotifier) Notify(ctx context.Context, summary Summary) (domain.Notification, error) {
	created, err := n.repo.Create(ctx, domain.Notification{
		Title:   completionTitle,
		Message: completionMessage(summary),
		Type:    domain.NotificationTypePlacementProcessed,
		Role:    domain.RoleAdmin,
	})
	if err != nil {
		return domain.Notification{}, fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	return created, nil
}

func completionMessage(summary Summary) string {
	return fmt.Sprintf(
		"%d candidates have been successfully registered from the placement data. %d candidates were skipped (already exist).",
		summary.Created, summary.Skipped,
	)
}
