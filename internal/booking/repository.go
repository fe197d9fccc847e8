package booking

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
		Mutations: submission.Mutations{DB: db, Kind: submission.KindBooking},
		db:        db,
	}
}

const columns = `
id, name, email, phone, address, COALESCE(suburb, ''), service, preferred_date::text,
COALESCE(preferred_time, ''), COALESCE(property_type, ''), bedrooms, bathrooms, COALESCE(notes, ''),
instant, status, admin_notes, assigned_to, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.Name, &b.Email, &b.Phone, &b.Address, &b.Suburb, &b.Service, &b.PreferredDate,
		&b.PreferredTime, &b.PropertyType, &b.Bedrooms, &b.Bathrooms, &b.Notes,
		&b.Instant, &b.Status, &b.AdminNotes, &b.AssignedTo, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Insert stores b with the initial booking status and fills in the generated fields.
func (r *Repository) Insert(ctx context.Context, b *Booking) error {
	const q = `
INSERT INTO bookings (name, email, phone, address, suburb, service, preferred_date, preferred_time,
                      property_type, bedrooms, bathrooms, notes, instant, status)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, CAST($7::text AS date), NULLIF($8, ''),
        NULLIF($9, ''), $10, $11, NULLIF($12, ''), $13, $14)
RETURNING id, status, created_at, updated_at
`
	return r.db.QueryRow(ctx, q,
		b.Name, b.Email, b.Phone, b.Address, b.Suburb, b.Service, b.PreferredDate, b.PreferredTime,
		b.PropertyType, b.Bedrooms, b.Bathrooms, b.Notes, b.Instant, string(submission.InitialStatus(submission.KindBooking)),
	).Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *Repository) List(ctx context.Context, f submission.ListFilter) ([]Booking, error) {
	f = f.Normalize()
	q := `SELECT` + columns + `
FROM bookings
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Booking, error) {
	q := `SELECT` + columns + `
FROM bookings
WHERE id = $1
`
	b, err := scan(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, submission.MapReadError(err)
	}
	return &b, nil
}
