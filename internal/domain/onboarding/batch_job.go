package onboarding

import (
	"fmt"
	"time"
)

// ProcessingState tracks a batch job through a single onboarding run.
type ProcessingState string

const (
	StateUnprocessed ProcessingState = "unprocessed"
	StateProcessing  ProcessingState = "processing"
	StateProcessed   ProcessingState = "processed"
)

func (s ProcessingState) IsValid() bool {
	switch s {
	case StateUnprocessed, StateProcessing, StateProcessed:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is reachable from s. Processed is terminal.
func (s ProcessingState) CanTransitionTo(next ProcessingState) bool {
	switch s {
	case StateUnprocessed:
		return next == StateProcessing
	case StateProcessing:
		return next == StateProcessed || next == StateUnprocessed
	}
	return false
}

func (s ProcessingState) Transition(next ProcessingState) (ProcessingState, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s, next)
	}
	return next, nil
}

var processingStates = []ProcessingState{StateUnprocessed, StateProcessing, StateProcessed}

// SourcesOf lists every state allowed to move to next. Stores use it to build the
// conditional update that performs the transition.
func SourcesOf(next ProcessingState) []ProcessingState {
	var sources []ProcessingState
	for _, s := range processingStates {
		if s.CanTransitionTo(next) {
			sources = append(sources, s)
		}
	}
	return sources
}

// Status is the administrative lifecycle of a batch job, independent of processing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// File is an uploaded spreadsheet kept in its encoded form.
type File struct {
	Encoded   string
	MediaType string
	Name      string
}

type BatchJob struct {
	ID             string
	SubmitterName  string
	SubmitterEmail string
	SubmitterPhone string
	File           *File
	DefaultCredits int
	State          ProcessingState
	ProcessedAt    *time.Time
	CreatedCount   int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (j BatchJob) Processed() bool {
	return j.State == StateProcessed
}

func (j BatchJob) HasFile() bool {
	return j.File != nil && j.File.Encoded != ""
}
