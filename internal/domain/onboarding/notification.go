package onboarding

import "time"

const (
	RoleAdmin     = "admin"
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
	RolePlacement = "placement"
)

const NotificationTypePlacementProcessed = "placement_processed"

type Notification struct {
	ID        string
	Title     string
	Message   string
	Type      string
	Role      string
	Read      bool
	CreatedAt time.Time
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCandidate, RoleEmployer, RolePlacement:
		return true
	}
	return false
}
