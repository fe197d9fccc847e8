package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	ID         string          `json:"id"`
	RecordKind string          `json:"recordKind"`
	RecordID   string          `json:"recordId"`
	Action     Action          `json:"action"`
	Actor      string          `json:"actor"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records an admin mutation. record_id carries no foreign key so rows outlive deletes.
func Insert(ctx context.Context, tx pgx.Tx, recordKind, recordID string, action Action, actor string, metadata any) error {
	var s *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (record_kind, record_id, action, actor, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, recordKind, recordID, string(action), actor, s)
	return err
}

func (r *Repository) ListByRecord(ctx context.Context, recordKind, recordID string) ([]Entry, error) {
	const q = `
SELECT id, record_kind, record_id, action, actor, COALESCE(metadata, '{}'::jsonb), created_at
FROM audit_logs
WHERE record_kind = $1 AND record_id = $2
ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.Query(ctx, q, recordKind, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RecordKind, &e.RecordID, &e.Action, &e.Actor, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
