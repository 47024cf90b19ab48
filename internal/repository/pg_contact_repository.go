package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thorsignia/backend/internal/model"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS contacts (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(120) NOT NULL,
	phone VARCHAR(20),
	company VARCHAR(100) NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Migrate creates the contacts table if it does not exist.
func (r *PgContactRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, pgSchema)
	return err
}

// Drop removes the contacts table.
func (r *PgContactRepository) Drop(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS contacts`)
	return err
}

// Insert stores a new contacts row and populates c.ID and c.CreatedAt from
// the database RETURNING clause.
func (r *PgContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, company, message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		c.Name, c.Email, c.Phone, c.Company, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
}

// List returns all submissions, newest first.
func (r *PgContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, company, message, created_at
		 FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// GetByID returns one submission or ErrNotFound.
func (r *PgContactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	var c model.Contact
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, company, message, created_at
		 FROM contacts WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Message, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Count returns the number of stored submissions.
func (r *PgContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}
