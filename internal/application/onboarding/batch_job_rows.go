package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

const (
	RowSourceSpreadsheet = "spreadsheet"
	RowSourceAccounts    = "accounts"
)

// RowOutput never carries a password. Before processing PasswordSet reports whether the
// sheet supplied one; created accounts always have one.
type RowOutput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Credits     int      `json:"credits"`
	PasswordSet bool     `json:"password_set"`
	Missing     []string `json:"missing,omitempty"`
}

type GetBatchJobRowsInput struct {
	ID string
}

type GetBatchJobRowsOutput struct {
	BatchJobID string      `json:"batch_job_id"`
	Processed  bool        `json:"processed"`
	Source     string      `json:"source"`
	Rows       []RowOutput `json:"rows"`
}

type GetBatchJobRows interface {
	Execute(ctx context.Context, in GetBatchJobRowsInput) (GetBatchJobRowsOutput, error)
}

type getBatchJobRows struct {
	jobs     domain.BatchJobRepository
	accounts domain.AccountQueryRepository
	codec    SpreadsheetCodec
}

func NewGetBatchJobRows(jobs domain.BatchJobRepository, accounts domain.AccountQueryRepository, codec SpreadsheetCodec) GetBatchJobRows {
	return &getBatchJobRows{jobs: jobs, accounts: accounts, codec: codec}
}

// Execute previews the uploaded sheet until the job is processed. From then on the created
// accounts are the source of truth and the sheet is not decoded again.
func (uc *getBatchJobRows) Execute(ctx context.Context, in GetBatchJobRowsInput) (GetBatchJobRowsOutput, error) {
	job, err := loadBatchJob(ctx, uc.jobs, in.ID, ErrReadBatchJobRows)
	if err != nil {
		return GetBatchJobRowsOutput{}, err
	}

	out := GetBatchJobRowsOutput{BatchJobID: job.ID, Processed: job.Processed()}

	if job.Processed() {
		accounts, err := uc.accounts.ListByBatchJob(ctx, job.ID)
		if err != nil {
			return GetBatchJobRowsOutput{}, fmt.Errorf("%w: %v", ErrReadBatchJobRows, err)
		}
		out.Source = RowSourceAccounts
		out.Rows = make([]RowOutput, 0, len(accounts))
		for _, a := range accounts {
			out.Rows = append(out.Rows, RowOutput{
				Name:        a.Name,
				Email:       a.Email,
				Phone:       a.Phone,
				Credits:     a.Credits,
				PasswordSet: a.PasswordHash != "",
			})
		}
		return out, nil
	}

	if !job.HasFile() {
		return GetBatchJobRowsOutput{}, ErrNoStudentData
	}

	rows, err := uc.codec.Rows(*job.File)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			return GetBatchJobRowsOutput{}, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
		}
		return GetBatchJobRowsOutput{}, fmt.Errorf("%w: %v", ErrReadBatchJobRows, err)
	}

	out.Source = RowSourceSpreadsheet
	out.Rows = PreviewRows(rows, job.DefaultCredits)
	return out, nil
}

// PreviewRows normalizes rows for display without creating anything.
func PreviewRows(rows []domain.RawRow, defaultCredits int) []RowOutput {
	preview := make([]RowOutput, 0, len(rows))
	for _, row := range rows {
		c, err := domain.Normalize(row, defaultCredits)
		item := RowOutput{
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			Credits:     c.Credits,
			PasswordSet: c.Password != "",
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			item.Missing = verr.Missing
		}
		preview = append(preview, item)
	}
	return preview
}

type AccountOutput struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Credits            int       `json:"credits"`
	RegistrationMethod string    `json:"registration_method"`
	Verified           bool      `json:"verified"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

type ListBatchJobAccountsInput struct {
	ID string
}

type ListBatchJobAccountsOutput struct {
	BatchJobID string          `json:"batch_job_id"`
	Accounts   []AccountOutput `json:"accounts"`
}

type ListBatchJobAccounts interface {
	Execute(ctx context.Context, in ListBatchJobAccountsInput) (ListBatchJobAccountsOutput, error)
}

type listBatchJobAccounts struct {
	jobs     domain.BatchJobRepository
	accounts domain.AccountQueryRepository
}

func NewListBatchJobAccounts(jobs domain.BatchJobRepository, accounts domain.AccountQueryRepository) ListBatchJobAccounts {
	return &listBatchJobAccounts{jobs: jobs, accounts: accounts}
}

func (uc *listBatchJobAccounts) Execute(ctx context.Context, in ListBatchJobAccountsInput) (ListBatchJobAccountsOutput, error) {
	job, err := loadBatchJob(ctx, uc.jobs, in.ID, ErrReadBatchJobRows)
	if err != nil {
		return ListBatchJobAccountsOutput{}, err
	}

	accounts, err := uc.accounts.ListByBatchJob(ctx, job.ID)
	if err != nil {
		return ListBatchJobAccountsOutput{}, fmt.Errorf("%w: %v", ErrReadBatchJobRows, err)
	}

	out := ListBatchJobAccountsOutput{
		BatchJobID: job.ID,
		Accounts:   make([]AccountOutput, 0, len(accounts)),
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, AccountOutput{
			ID:                 a.ID,
			Name:               a.Name,
			Email:              a.Email,
			Phone:              a.Phone,
			Credits:            a.Credits,
			RegistrationMethod: a.RegistrationMethod,
			Verified:           a.Verified,
			Status:             a.Status,
			CreatedAt:          a.CreatedAt,
		})
	}
	return out, nil
}

type DownloadBatchJobFileInput struct {
	ID string
}

type DownloadBatchJobFileOutput struct {
	Name      string
	MediaType string
	Data      []byte
}

type DownloadBatchJobFile interface {
	Execute(ctx context.Context, in DownloadBatchJobFileInput) (DownloadBatchJobFileOutput, error)
}

type downloadBatchJobFile struct {
	jobs  domain.BatchJobRepository
	codec SpreadsheetCodec
}

func NewDownloadBatchJobFile(jobs domain.BatchJobRepository, codec SpreadsheetCodec) DownloadBatchJobFile {
	return &downloadBatchJobFile{jobs: jobs, codec: codec}
}

func (uc *downloadBatchJobFile) Execute(ctx context.Context, in DownloadBatchJobFileInput) (DownloadBatchJobFileOutput, error) {
	job, err := loadBatchJob(ctx, uc.jobs, in.ID, ErrReadBatchJobRows)
	if err != nil {
		return DownloadBatchJobFileOutput{}, err
	}
	if !job.HasFile() {
		return DownloadBatchJobFileOutput{}, ErrNoStudentData
	}

	data, err := uc.codec.Payload(*job.File)
	if err != nil {
		return DownloadBatchJobFileOutput{}, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}

	name := job.File.Name
	if name == "" {
		name = "student-data"
	}
	return DownloadBatchJobFileOutput{
		Name:      name,
		MediaType: job.File.MediaType,
		Data:      data,
	}, nil
}
