package onboarding_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
	domain "github.com/mohammadpnp/candidate-onboarding/internal/domain/onboarding"
)

func TestSubmitBatchJobSuccess(t *testing.T) {
	t.Parallel()

	repo := newFakeBatchJobRepo()
	uc := app.NewSubmitBatchJob(repo, &fakeCodec{})

	out, err := uc.Execute(context.Background(), app.SubmitBatchJobInput{
		Name:           " Placement Office ",
		Email:          "placement@example.com",
		Phone:          "555-0100",
		DefaultCredits: 4,
		File: &app.UploadedFile{
			Name:      "../uploads/students.csv",
			MediaType: "application/octet-stream",
			Data:      []byte("Name,Email,Password\n"),
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ID != jobID || out.Status != string(domain.StatusPending) || out.Processed {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.FileName != "students.csv" || out.FileType != "text/csv" || !out.HasFile {
		t.Fatalf("unexpected file fields: %+v", out)
	}

	stored := repo.created[0]
	if stored.SubmitterName != "Placement Office" || stored.DefaultCredits != 4 {
		t.Fatalf("unexpected stored job: %+v", stored)
	}
	if stored.File.Encoded != "enc:Name,Email,Password\n" {
		t.Fatalf("payload must be encoded, got %q", stored.File.Encoded)
	}
	if stored.State != domain.StateUnprocessed {
		t.Fatalf("unexpected state: %s", stored.State)
	}
}

func TestSubmitBatchJobWithoutFile(t *testing.T) {
	t.Parallel()

	repo := newFakeBatchJobRepo()
	out, err := app.NewSubmitBatchJob(repo, &fakeCodec{}).Execute(context.Background(), app.SubmitBatchJobInput{
		Name:  "Office",
		Email: "office@example.com",
		Phone: "1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.HasFile || repo.created[0].File != nil {
		t.Fatalf("unexpected file: %+v", out)
	}
}

func TestSubmitBatchJobValidation(t *testing.T) {
	t.Parallel()

	valid := app.SubmitBatchJobInput{Name: "Office", Email: "office@example.com", Phone: "1"}
	cases := []struct {
		name    string
		mutate  func(*app.SubmitBatchJobInput)
		wantErr error
	}{
		{name: "missing name", mutate: func(in *app.SubmitBatchJobInput) { in.Name = " " }, wantErr: app.ErrInvalidSubmission},
		{name: "missing phone", mutate: func(in *app.SubmitBatchJobInput) { in.Phone = "" }, wantErr: app.ErrInvalidSubmission},
		{name: "bad email", mutate: func(in *app.SubmitBatchJobInput) { in.Email = "not-an-email" }, wantErr: app.ErrInvalidSubmission},
		{name: "display name email", mutate: func(in *app.SubmitBatchJobInput) { in.Email = "Office <office@example.com>" }, wantErr: app.ErrInvalidSubmission},
		{name: "negative credits", mutate: func(in *app.SubmitBatchJobInput) { in.DefaultCredits = -1 }, wantErr: app.ErrInvalidCredits},
		{name: "empty file", mutate: func(in *app.SubmitBatchJobInput) { in.File = &app.UploadedFile{Name: "a.csv"} }, wantErr: app.ErrInvalidSubmission},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tc.mutate(&in)
			repo := newFakeBatchJobRepo()
			_, err := app.NewSubmitBatchJob(repo, &fakeCodec{}).Execute(context.Background(), in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if len(repo.created) != 0 {
				t.Fatal("nothing must be stored")
			}
		})
	}
}

func TestSubmitBatchJobRepositoryErrors(t *testing.T) {
	t.Parallel()

	in := app.SubmitBatchJobInput{Name: "Office", Email: "office@example.com", Phone: "1"}

	repo := newFakeBatchJobRepo()
	repo.createErr = domain.ErrSubmitterEmailTaken
	if _, err := app.NewSubmitBatchJob(repo, &fakeCodec{}).Execute(context.Background(), in); !errors.Is(err, app.ErrSubmitterExists) {
		t.Fatalf("expected ErrSubmitterExists, got %v", err)
	}

	repo.createErr = errBoom
	if _, err := app.NewSubmitBatchJob(repo, &fakeCodec{}).Execute(context.Background(), in); !errors.Is(err, app.ErrSubmitBatchJob) {
		t.Fatalf("expected ErrSubmitBatchJob, got %v", err)
	}
}
