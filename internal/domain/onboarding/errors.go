package onboarding

import "errors"

var (
	ErrDecode                 = errors.New("cannot decode spreadsheet")
	ErrValidation             = errors.New("row is missing required fields")
	ErrEmailConflict          = errors.New("email already registered")
	ErrNotification           = errors.New("notification failed")
	ErrBatchJobNotFound       = errors.New("batch job not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrInvalidStateTransition = errors.New("invalid processing state transition")
	ErrSubmitterEmailTaken    = errors.New("submitter email already registered")
)
