package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

// AccountRepository writes accounts through pgx. The unique index on accounts.email
// is the final guard against duplicate rows from concurrent runs.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping account store: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var (
		account    domain.Account
		batchJobID *string
	)

	err := r.pool.QueryRow(ctx, `
SELECT id::text, email, password_hash, name, phone, credits, batch_job_id::text,
       registration_method, verified, status, created_at
FROM accounts
WHERE email = $1
`, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Name,
		&account.Phone,
		&account.Credits,
		&batchJobID,
		&account.RegistrationMethod,
		&account.Verified,
		&account.Status,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	account.BatchJobID = textOrEmpty(batchJobID)
	return &account, nil
}

// CreateWithProfile inserts the account and its empty profile in one transaction, so an
// account never exists without its profile.
func (r *AccountRepository) CreateWithProfile(ctx context.Context, account domain.Account) (domain.Account, domain.Profile, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	profile := domain.Profile{ID: uuid.NewString(), AccountID: account.ID}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Account{}, domain.Profile{}, fmt.Errorf("begin account tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO accounts (id, email, password_hash, name, phone, credits, batch_job_id,
                      registration_method, verified, status, created_at, updated_at)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7::uuid, $8, $9, $10, NOW(), NOW())
RETURNING created_at
`,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.Phone,
		account.Credits,
		nullableText(account.BatchJobID),
		account.RegistrationMethod,
		account.Verified,
		account.Status,
	).Scan(&account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrEmailConflict, account.Email)
		}
		return domain.Account{}, domain.Profile{}, fmt.Errorf("create account: %w", err)
	}

	err = tx.QueryRow(ctx, `
INSERT INTO profiles (id, account_id, created_at, updated_at)
VALUES ($1::uuid, $2::uuid, NOW(), NOW())
RETURNING created_at
`, profile.ID, profile.AccountID).Scan(&profile.CreatedAt)
	if err != nil {
		return domain.Account{}, domain.Profile{}, fmt.Errorf("create profile for %s: %w", account.Email, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Account{}, domain.Profile{}, fmt.Errorf("commit account tx: %w", err)
	}
	return account, profile, nil
}
