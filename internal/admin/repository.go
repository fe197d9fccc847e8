package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cleanbook/pkg/db"
)

var (
	ErrNotFound   = errors.New("admin user not found")
	ErrEmailTaken = errors.New("admin email already registered")
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new admin. An existing email yields ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, email, name, passwordHash string) (*User, error) {
	const q = `
INSERT INTO admin_users (email, name, password_hash)
VALUES ($1, $2, $3)
RETURNING id, email, name, password_hash, created_at, last_login_at
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, normalizeEmail(email), name, passwordHash).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Upsert creates the admin or replaces its name and password hash.
func (r *Repository) Upsert(ctx context.Context, email, name, passwordHash string) (*User, error) {
	const q = `
INSERT INTO admin_users (email, name, password_hash)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET
  name = EXCLUDED.name,
  password_hash = EXCLUDED.password_hash
RETURNING id, email, name, password_hash, created_at, last_login_at
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, normalizeEmail(email), name, passwordHash).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, email, name, password_hash, created_at, last_login_at
FROM admin_users
WHERE email = $1
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, normalizeEmail(email)).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string) error {
	const q = `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
