package onboarding

import "time"

const RegistrationMethodPlacement = "placement"

const AccountStatusActive = "active"

type Account struct {
	ID                 string
	Email              string
	PasswordHash       string
	Name               string
	Phone              string
	Credits            int
	BatchJobID         string
	RegistrationMethod string
	Verified           bool
	Status             string
	CreatedAt          time.Time
}

// NewPlacementAccount builds the account for an accepted row. passwordHash must already be hashed.
func NewPlacementAccount(c Candidate, passwordHash, batchJobID string) Account {
	return Account{
		Email:              c.Email,
		PasswordHash:       passwordHash,
		Name:               c.Name,
		Phone:              c.Phone,
		Credits:            c.Credits,
		BatchJobID:         batchJobID,
		RegistrationMethod: RegistrationMethodPlacement,
		Verified:           true,
		Status:             AccountStatusActive,
	}
}

type Profile struct {
	ID        string
	AccountID string
	CreatedAt time.Time
}
