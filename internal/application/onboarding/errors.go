package onboarding

import "errors"

var (
	ErrInvalidBatchJobID        = errors.New("invalid batch job id")
	ErrBatchJobNotFound         = errors.New("batch job not found")
	ErrBatchJobAlreadyProcessed = errors.New("batch job already processed")
	ErrBatchJobBusy             = errors.New("batch job is being processed")
	ErrNoStudentData            = errors.New("batch job has no student data")
	ErrInvalidSpreadsheet       = errors.New("invalid spreadsheet")
	ErrTooManyRows              = errors.New("spreadsheet exceeds the row limit")
	ErrInvalidSubmission        = errors.New("invalid batch job submission")
	ErrSubmitterExists          = errors.New("a batch job for this submitter already exists")
	ErrInvalidStatus            = errors.New("invalid batch job status")
	ErrInvalidCredits           = errors.New("credits must be a non-negative integer")
	ErrAccountStoreUnavailable  = errors.New("account store unavailable")
	ErrInvalidNotificationID    = errors.New("invalid notification id")
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrInvalidRole              = errors.New("invalid role")

	ErrSubmitBatchJob     = errors.New("failed to submit batch job")
	ErrGetBatchJob        = errors.New("failed to get batch job")
	ErrListBatchJobs      = errors.New("failed to list batch jobs")
	ErrUpdateBatchJob     = errors.New("failed to update batch job")
	ErrReadBatchJobRows   = errors.New("failed to read batch job rows")
	ErrProcessBatchJob    = errors.New("failed to process batch job")
	ErrListNotifications  = errors.New("failed to list notifications")
	ErrUpdateNotification = errors.New("failed to update notification")
)
