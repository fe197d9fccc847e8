package notify

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores dispatch outcomes in notification_log.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, kind Kind, recordID string, res Result, dispatchErr error) error {
	ids, err := json.Marshal(res.DeliveryIDs)
	if err != nil {
		return err
	}
	var errText *string
	if dispatchErr != nil {
		s := dispatchErr.Error()
		errText = &s
	} else if len(res.Failures) > 0 {
		b, _ := json.Marshal(res.Failures)
		s := string(b)
		errText = &s
	}
	var rid *string
	if recordID != "" {
		rid = &recordID
	}
	const q = `
INSERT INTO notification_log (kind, record_id, success, delivery_ids, error)
VALUES ($1, $2, $3, CAST($4 AS jsonb), $5)
`
	_, err = r.db.Exec(ctx, q, string(kind), rid, res.Success, string(ids), errText)
	return err
}
