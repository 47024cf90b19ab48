package service

import (
	"context"

	"github.com/thorsignia/backend/internal/backup"
	"github.com/thorsignia/backend/internal/model"
	"github.com/thorsignia/backend/internal/notify"
	"github.com/thorsignia/backend/internal/validate"
)

// Notifier sends the post-commit email notification for a submission.
type Notifier interface {
	Notify(c *model.Contact) notify.Result
}

// BackupWriter appends the post-commit local backup for a submission.
type BackupWriter interface {
	Append(c *model.Contact) backup.Result
}

// SubmitResult reports the outcome of the full submission pipeline.
type SubmitResult struct {
	Contact       *model.Contact
	EmailSent     bool
	BackupCreated bool
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit runs the pipeline: validate/sanitize, persist, then the two
	// best-effort post-commit hooks (notify, backup). Validation and
	// persistence failures abort the pipeline; hook failures only show up
	// as false flags in the result.
	Submit(ctx context.Context, req validate.Request) (*SubmitResult, error)

	// List returns all submissions, newest first.
	List(ctx context.Context) ([]*model.Contact, error)

	// GetByID returns one submission by id.
	GetByID(ctx context.Context, id int64) (*model.Contact, error)
}
