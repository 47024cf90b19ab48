package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thorsignia/backend/internal/model"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	company TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// SQLiteContactRepository stores submissions in a local SQLite file. It is
// the fallback store for deployments without a PostgreSQL configuration.
type SQLiteContactRepository struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(path string) (*SQLiteContactRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The backup writer and tests may touch the same file from multiple
	// goroutines; a single connection sidesteps SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &SQLiteContactRepository{db: db, now: time.Now}, nil
}

var _ ContactRepository = (*SQLiteContactRepository)(nil)

// Close releases the underlying database handle.
func (r *SQLiteContactRepository) Close() error {
	return r.db.Close()
}

// Migrate creates the contacts table if it does not exist.
func (r *SQLiteContactRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteSchema)
	return err
}

// Drop removes the contacts table.
func (r *SQLiteContactRepository) Drop(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DROP TABLE IF EXISTS contacts`)
	return err
}

// Insert stores a new contacts row, assigning the id and timestamp.
func (r *SQLiteContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	created := r.now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, phone, company, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Company, c.Message, created.Format(time.RFC3339))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	c.CreatedAt = created
	return nil
}

// List returns all submissions, newest first.
func (r *SQLiteContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, company, message, created_at
		 FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetByID returns one submission or ErrNotFound.
func (r *SQLiteContactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, company, message, created_at
		 FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Count returns the number of stored submissions.
func (r *SQLiteContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}

// scanContact reads one row, parsing the RFC3339 created_at column.
func scanContact(scan func(dest ...any) error) (*model.Contact, error) {
	var c model.Contact
	var createdAt string
	if err := scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message, &createdAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	c.CreatedAt = ts
	return &c, nil
}
