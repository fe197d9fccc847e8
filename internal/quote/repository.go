package quote

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cleanbook/internal/audit"
	"cleanbook/internal/submission"
	"cleanbook/pkg/db"
)

var ErrInvalidAmount = errors.New("invalid quoted amount")

type Repository struct {
	submission.Mutations
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Mutations: submission.Mutations{DB: db, Kind: submission.KindQuote},
		db:        db,
	}
}

const columns = `
id, name, email, phone, COALESCE(address, ''), COALESCE(property_type, ''), COALESCE(frequency, ''),
services, COALESCE(description, ''), quoted_amount::text, status, admin_notes, assigned_to, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Quote, error) {
	var q Quote
	var amount *string
	if err := row.Scan(
		&q.ID, &q.Name, &q.Email, &q.Phone, &q.Address, &q.PropertyType, &q.Frequency,
		&q.Services, &q.Description, &amount, &q.Status, &q.AdminNotes, &q.AssignedTo, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return Quote{}, err
	}
	if amount != nil {
		d, err := decimal.NewFromString(*amount)
		if err != nil {
			return Quote{}, err
		}
		q.QuotedAmount = decimal.NewNullDecimal(d)
	}
	return q, nil
}

func (r *Repository) Insert(ctx context.Context, q *Quote) error {
	const stmt = `
INSERT INTO quotes (name, email, phone, address, property_type, frequency, services, description, status)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), $9)
RETURNING id, status, created_at, updated_at
`
	return r.db.QueryRow(ctx, stmt,
		q.Name, q.Email, q.Phone, q.Address, q.PropertyType, q.Frequency, q.Services, q.Description,
		string(submission.InitialStatus(submission.KindQuote)),
	).Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt)
}

func (r *Repository) List(ctx context.Context, f submission.ListFilter) ([]Quote, error) {
	f = f.Normalize()
	stmt := `SELECT` + columns + `
FROM quotes
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, stmt, string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quote{}
	for rows.Next() {
		q, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Quote, error) {
	stmt := `SELECT` + columns + `
FROM quotes
WHERE id = $1
`
	q, err := scan(r.db.QueryRow(ctx, stmt, id))
	if err != nil {
		return nil, submission.MapReadError(err)
	}
	return &q, nil
}

// SetQuotedAmount overwrites the quoted price. Status is left to the admin.
func (r *Repository) SetQuotedAmount(ctx context.Context, id string, amount decimal.Decimal, actor string) error {
	const qPrev = `SELECT quoted_amount::text FROM quotes WHERE id = $1 FOR UPDATE`
	const qSet = `UPDATE quotes SET quoted_amount = CAST($1::text AS numeric), updated_at = NOW() WHERE id = $2`

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var prev *string
		if err := tx.QueryRow(ctx, qPrev, id).Scan(&prev); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, qSet, amount.StringFixed(2), id); err != nil {
			return err
		}
		return audit.Insert(ctx, tx, string(submission.KindQuote), id, audit.ActionAmountSet, actor,
			map[string]any{"from": prev, "to": amount.StringFixed(2)})
	})
	return submission.MapError(err)
}
