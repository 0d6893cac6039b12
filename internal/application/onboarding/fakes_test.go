package onboarding_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

const (
	jobID   = "8c0f2c4e-9a51-4d3b-a1f7-3b8e5c2d9f10"
	otherID = "1b6d7e2a-3c4f-4a5b-8c9d-0e1f2a3b4c5d"
)

type fakeBatchJobRepo struct {
	mu   sync.Mutex
	jobs map[string]domain.BatchJob

	created   []domain.BatchJob
	createErr error
	getErr    error
	listErr   error
	updateErr error
	lastList  domain.BatchJobFilter

	claimErr    error
	completeErr error
	lastLease   time.Duration
	released    int
	completed   int
}

func newFakeBatchJobRepo(jobs ...domain.BatchJob) *fakeBatchJobRepo {
	repo := &fakeBatchJobRepo{jobs: map[string]domain.BatchJob{}}
	for _, job := range jobs {
		repo.jobs[job.ID] = job
	}
	return repo
}

func (f *fakeBatchJobRepo) Create(ctx context.Context, job domain.BatchJob) (domain.BatchJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.BatchJob{}, f.createErr
	}
	job.ID = jobID
	job.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.created = append(f.created, job)
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeBatchJobRepo) GetByID(ctx context.Context, id string) (*domain.BatchJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	job, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrBatchJobNotFound
	}
	return &job, nil
}

func (f *fakeBatchJobRepo) List(ctx context.Context, filter domain.BatchJobFilter) ([]domain.BatchJob, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = filter
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []domain.BatchJob
	for _, job := range f.jobs {
		if filter.Status == "" || job.Status == filter.Status {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeBatchJobRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	job, ok := f.jobs[id]
	if !ok {
		return domain.ErrBatchJobNotFound
	}
	job.Status = status
	f.jobs[id] = job
	return nil
}

func (f *fakeBatchJobRepo) UpdateDefaultCredits(ctx context.Context, id string, credits int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	job, ok := f.jobs[id]
	if !ok {
		return domain.ErrBatchJobNotFound
	}
	if job.State != domain.StateUnprocessed {
		return domain.ErrInvalidStateTransition
	}
	job.DefaultCredits = credits
	f.jobs[id] = job
	return nil
}

func (f *fakeBatchJobRepo) BeginProcessing(ctx context.Context, id string, lease time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLease = lease
	if f.claimErr != nil {
		return false, f.claimErr
	}
	job, ok := f.jobs[id]
	if !ok || job.State != domain.StateUnprocessed {
		return false, nil
	}
	job.State = domain.StateProcessing
	f.jobs[id] = job
	return true, nil
}

func (f *fakeBatchJobRepo) CompleteProcessing(ctx context.Context, id string, createdCount int, processedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	job := f.jobs[id]
	next, err := job.State.Transition(domain.StateProcessed)
	if err != nil {
		return err
	}
	job.State = next
	job.CreatedCount = createdCount
	job.ProcessedAt = &processedAt
	f.jobs[id] = job
	f.completed++
	return nil
}

func (f *fakeBatchJobRepo) ReleaseProcessing(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := f.jobs[id]
	next, err := job.State.Transition(domain.StateUnprocessed)
	if err != nil {
		return err
	}
	job.State = next
	f.jobs[id] = job
	f.released++
	return nil
}

func (f *fakeBatchJobRepo) job(id string) domain.BatchJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	byEmail  map[string]domain.Account
	created  []domain.Account
	pingErr  error
	findErr  map[string]error
	createFn func(account domain.Account) error
	seq      int

	profiles   []string
	profileErr error
}

func newFakeAccountRepo(existing ...string) *fakeAccountRepo {
	repo := &fakeAccountRepo{byEmail: map[string]domain.Account{}, findErr: map[string]error{}}
	for _, email := range existing {
		repo.byEmail[email] = domain.Account{ID: "existing-" + email, Email: email}
	}
	return repo
}

func (f *fakeAccountRepo) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.findErr[email]; err != nil {
		return nil, err
	}
	account, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

// CreateWithProfile stores the account and its profile together, or neither.
func (f *fakeAccountRepo) CreateWithProfile(ctx context.Context, account domain.Account) (domain.Account, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createFn != nil {
		if err := f.createFn(account); err != nil {
			return domain.Account{}, domain.Profile{}, err
		}
	}
	if _, ok := f.byEmail[account.Email]; ok {
		return domain.Account{}, domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrEmailConflict, account.Email)
	}
	if f.profileErr != nil {
		return domain.Account{}, domain.Profile{}, fmt.Errorf("create profile for %s: %w", account.Email, f.profileErr)
	}
	f.seq++
	account.ID = fmt.Sprintf("account-%d", f.seq)
	f.byEmail[account.Email] = account
	f.created = append(f.created, account)
	f.profiles = append(f.profiles, account.ID)
	return account, domain.Profile{ID: "profile-" + account.ID, AccountID: account.ID}, nil
}

func (f *fakeAccountRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEmail)
}

type fakeAccountQueryRepo struct {
	accounts map[string][]domain.Account
	err      error
}

func (f *fakeAccountQueryRepo) ListByBatchJob(ctx context.Context, batchJobID string) ([]domain.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts[batchJobID], nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	items     []domain.Notification
	createErr error
	listErr   error
	markErr   error
	marked    []string
	markedAll []string
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.Notification{}, f.createErr
	}
	n.ID = fmt.Sprintf("notification-%d", len(f.items)+1)
	f.items = append(f.items, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]domain.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Notification
	for _, n := range f.items {
		if n.Role == role {
			out = append(out, n)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByRole(ctx context.Context, role string, unreadOnly bool) (int64, error) {
	var count int64
	for _, n := range f.items {
		if n.Role == role && (!unreadOnly || !n.Read) {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, role string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedAll = append(f.markedAll, role)
	return nil
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeCodec struct {
	rows    []domain.RawRow
	rowsErr error
	payload []byte
}

func (f *fakeCodec) Encode(data []byte) string {
	return "enc:" + string(data)
}

func (f *fakeCodec) Payload(file domain.File) ([]byte, error) {
	if !strings.HasPrefix(file.Encoded, "enc:") {
		return nil, fmt.Errorf("%w: bad payload", domain.ErrDecode)
	}
	return []byte(strings.TrimPrefix(file.Encoded, "enc:")), nil
}

func (f *fakeCodec) Rows(file domain.File) ([]domain.RawRow, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	return f.rows, nil
}

type fakeHasher struct {
	err error
}

func (f fakeHasher) Hash(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + password, nil
}

var errBoom = errors.New("boom")

func unprocessedJob(defaultCredits int) domain.BatchJob {
	return domain.BatchJob{
		ID:             jobID,
		SubmitterName:  "Placement Office",
		SubmitterEmail: "placement@example.com",
		SubmitterPhone: "555-0100",
		DefaultCredits: defaultCredits,
		State:          domain.StateUnprocessed,
		Status:         domain.StatusPending,
		File:           &domain.File{Encoded: "enc:data", MediaType: "text/csv", Name: "students.csv"},
	}
}
