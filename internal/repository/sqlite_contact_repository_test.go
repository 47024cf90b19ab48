package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/thorsignia/backend/internal/model"
)

func newSQLiteRepo(t *testing.T) *SQLiteContactRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "contacts.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func sampleContact() *model.Contact {
	phone := "+1 555 0100"
	return &model.Contact{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   &phone,
		Company: "Acme",
		Message: "Hello",
	}
}

func TestSQLiteContactRepository_InsertAssignsIDAndTimestamp(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	c := sampleContact()
	if err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if c.ID == 0 {
		t.Error("expected ID to be set after Insert")
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set after Insert")
	}
}

func TestSQLiteContactRepository_GetByID(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	c := sampleContact()
	if err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	found, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != c.Name || found.Email != c.Email || found.Company != c.Company {
		t.Errorf("round-trip mismatch: got %+v, want %+v", found, c)
	}
	if found.Phone == nil || *found.Phone != *c.Phone {
		t.Errorf("expected phone %q, got %v", *c.Phone, found.Phone)
	}
	if !found.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", c.CreatedAt, found.CreatedAt)
	}
}

func TestSQLiteContactRepository_GetByID_NotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteContactRepository_ListNewestFirst(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Minute
		repo.now = func() time.Time { return base.Add(offset) }
		c := sampleContact()
		c.Message = time.Duration(i).String()
		if err := repo.Insert(ctx, c); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	contacts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	for i := 1; i < len(contacts); i++ {
		if contacts[i].CreatedAt.After(contacts[i-1].CreatedAt) {
			t.Errorf("expected newest first, got %v before %v", contacts[i-1].CreatedAt, contacts[i].CreatedAt)
		}
	}
}

func TestSQLiteContactRepository_NullPhone(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	c := sampleContact()
	c.Phone = nil
	if err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	found, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Phone != nil {
		t.Errorf("expected nil phone, got %q", *found.Phone)
	}
}

func TestSQLiteContactRepository_Count(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows, got %d", n)
	}

	if err := repo.Insert(ctx, sampleContact()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row, got %d", n)
	}
}
