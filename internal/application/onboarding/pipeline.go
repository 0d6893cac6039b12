package onboarding

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
	"go.uber.org/zap"
)

const (
	maxReportedErrors = 10
	maxReasonLength   = 300
)

type rowOutcome int

const (
	rowCreated rowOutcome = iota
	rowSkipped
	rowErrored
)

type rowResult struct {
	outcome rowOutcome
	reason  string
}

// Summary aggregates one processing run. Errors holds at most the first ten row messages
// while ErrorCount counts all of them.
type Summary struct {
	Created    int      `json:"created"`
	Skipped    int      `json:"skipped"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
}

func (s Summary) add(r rowResult) Summary {
	switch r.outcome {
	case rowCreated:
		s.Created++
	case rowSkipped:
		s.Skipped++
	case rowErrored:
		s.ErrorCount++
		if len(s.Errors) < maxReportedErrors {
			s.Errors = append(s.Errors, r.reason)
		}
	}
	return s
}

type rowPipeline struct {
	accounts domain.AccountRepository
	hasher   PasswordHasher
	logger   *zap.SugaredLogger
}

// run folds every row into a Summary in sheet order. Only context cancellation stops it early.
func (p *rowPipeline) run(ctx context.Context, job domain.BatchJob, rows []domain.RawRow) (Summary, error) {
	summary := Summary{Errors: make([]string, 0)}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := p.processRow(ctx, job, i+1, row)
		if result.outcome == rowErrored {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			p.logger.Debugw("onboarding row rejected", "batch_job_id", job.ID, "reason", result.reason)
		}
		summary = summary.add(result)
	}
	return summary, nil
}

func (p *rowPipeline) processRow(ctx context.Context, job domain.BatchJob, line int, row domain.RawRow) rowResult {
	candidate, err := domain.Normalize(row, job.DefaultCredits)
	if err != nil {
		return errored(line, err)
	}

	existing, err := p.accounts.FindByEmail(ctx, candidate.Email)
	switch {
	case err == nil && existing != nil:
		return rowResult{outcome: rowSkipped}
	case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
		return errored(line, fmt.Errorf("lookup %s: %w", candidate.Email, err))
	}

	hash, err := p.hasher.Hash(candidate.Password)
	if err != nil {
		return errored(line, err)
	}

	if _, _, err := p.accounts.CreateWithProfile(ctx, domain.NewPlacementAccount(candidate, hash, job.ID)); err != nil {
		return errored(line, err)
	}

	return rowResult{outcome: rowCreated}
}

func errored(line int, err error) rowResult {
	return rowResult{outcome: rowErrored, reason: truncateReason(fmt.Sprintf("row %d: %v", line, err))}
}

func truncateReason(reason string) string {
	runes := []rune(reason)
	if len(runes) <= maxReasonLength {
		return reason
	}
	return string(runes[:maxReasonLength])
}
