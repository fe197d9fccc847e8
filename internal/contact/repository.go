package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"cleanbook/internal/submission"
)

type Repository struct {
	submission.Mutations
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Mutations: submission.Mutations{DB: db, Kind: submission.KindContact},
		db:        db,
	}
}

func (r *Repository) Insert(ctx context.Context, m *Message) error {
	const q = `
INSERT INTO contact_messages (name, email, phone, subject, message, status)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
RETURNING id, status, created_at, updated_at
`
	return r.db.QueryRow(ctx, q,
		m.Name, m.Email, m.Phone, m.Subject, m.Message, string(submission.InitialStatus(submission.KindContact)),
	).Scan(&m.ID, &m.Status, &m.CreatedAt, &m.UpdatedAt)
}

func (r *Repository) List(ctx context.Context, f submission.ListFilter) ([]Message, error) {
	f = f.Normalize()
	const q = `
SELECT id, name, email, COALESCE(phone, ''), COALESCE(subject, ''), message, status,
       admin_notes, assigned_to, created_at, updated_at
FROM contact_messages
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Status,
			&m.AdminNotes, &m.AssignedTo, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Message, error) {
	const q = `
SELECT id, name, email, COALESCE(phone, ''), COALESCE(subject, ''), message, status,
       admin_notes, assigned_to, created_at, updated_at
FROM contact_messages
WHERE id = $1
`
	var m Message
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Status,
		&m.AdminNotes, &m.AssignedTo, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, submission.MapReadError(err)
	}
	return &m, nil
}
