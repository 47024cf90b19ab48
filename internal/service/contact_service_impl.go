package service

import (
	"context"
	"log/slog"

	"github.com/thorsignia/backend/internal/backup"

	"github.com/thorsignia/backend/internal/metrics"
	"github.com/thorsignia/backend/internal/model"
	"github.com/thorsignia/backend/internal/notify"
	"github.com/thorsignia/backend/internal/repository"
	"github.com/thorsignia/backend/internal/validate"
	apperrors "github.com/thorsignia/backend/pkg/errors"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier Notifier
	backup   BackupWriter
}

// NewContactService creates a ContactService over the given repository and
// post-commit hooks.
func NewContactService(repo repository.ContactRepository, notifier Notifier, backup BackupWriter) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier, backup: backup}
}

// Submit validates, sanitizes and persists a submission, then runs the
// notification and backup hooks. The hooks run strictly after a successful
// insert and can never fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, req validate.Request) (*SubmitResult, error) {
	contact, err := validate.Contact(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, contact); err != nil {
		slog.Error("contact insert failed", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "Failed to save contact", err)
	}
	metrics.RecordContactSubmission()
	slog.Info("contact saved", "id", contact.ID, "email", contact.Email, "company", contact.Company)

	notifyRes := s.notifier.Notify(contact)
	metrics.RecordNotification(notifyRes.Sent, notifyRes.Reason != notify.ReasonNotConfigured)
	if !notifyRes.Sent {
		slog.Warn("notification not sent", "id", contact.ID, "reason", notifyRes.Reason)
	}

	backupRes := s.backup.Append(contact)
	metrics.RecordBackup(backupRes.Written, backupRes.Reason == backup.ReasonDisabledInProduction)
	if !backupRes.Written {
		slog.Debug("backup not written", "id", contact.ID, "reason", backupRes.Reason)
	}

	return &SubmitResult{
		Contact:       contact,
		EmailSent:     notifyRes.Sent,
		BackupCreated: backupRes.Written,
	}, nil
}

// List returns all submissions, newest first.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.List(ctx)
}

// GetByID returns one submission by id, mapping repository misses to a
// NOT_FOUND application error.
func (s *contactServiceImpl) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "Contact not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "Failed to retrieve contact", err)
	}
	return c, nil
}
