package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cleanbook/internal/audit"
	"cleanbook/pkg/db"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUpdateFailed = errors.New("update failed")
)

// Annotation is the admin-editable free text on a record. Saving overwrites both fields;
// a nil field is stored as NULL.
type Annotation struct {
	AdminNotes *string `json:"adminNotes"`
	AssignedTo *string `json:"assignedTo"`
}

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Normalize clamps paging values to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Store is the admin-facing contract every record repository satisfies.
type Store[T any] interface {
	List(ctx context.Context, f ListFilter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	SetStatus(ctx context.Context, id string, next Status, actor string) error
	Annotate(ctx context.Context, id string, a Annotation, actor string) error
	Delete(ctx context.Context, id string, actor string) error
}

// Mutations implements the admin writes shared by all kinds. Each write is a direct,
// unconditioned update (last write wins) plus an audit row in the same transaction.
type Mutations struct {
	DB   *pgxpool.Pool
	Kind Kind
}

func (m Mutations) SetStatus(ctx context.Context, id string, next Status, actor string) error {
	if _, err := ParseStatus(m.Kind, string(next)); err != nil {
		return err
	}
	qPrev := `SELECT status FROM ` + m.Kind.Table() + ` WHERE id = $1 FOR UPDATE`
	qSet := `UPDATE ` + m.Kind.Table() + ` SET status = $1, updated_at = NOW() WHERE id = $2`
	return m.write(ctx, id, func(tx pgx.Tx) (map[string]any, error) {
		var prev string
		if err := tx.QueryRow(ctx, qPrev, id).Scan(&prev); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, qSet, string(next), id); err != nil {
			return nil, err
		}
		return map[string]any{"from": prev, "to": next}, nil
	}, audit.ActionStatusChanged, actor)
}

func (m Mutations) Annotate(ctx context.Context, id string, a Annotation, actor string) error {
	q := `UPDATE ` + m.Kind.Table() + ` SET admin_notes = $1, assigned_to = $2, updated_at = NOW() WHERE id = $3`
	return m.write(ctx, id, func(tx pgx.Tx) (map[string]any, error) {
		tag, err := tx.Exec(ctx, q, a.AdminNotes, a.AssignedTo, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, pgx.ErrNoRows
		}
		return map[string]any{"assignedTo": a.AssignedTo}, nil
	}, audit.ActionAnnotated, actor)
}

func (m Mutations) Delete(ctx context.Context, id string, actor string) error {
	q := `DELETE FROM ` + m.Kind.Table() + ` WHERE id = $1`
	return m.write(ctx, id, func(tx pgx.Tx) (map[string]any, error) {
		tag, err := tx.Exec(ctx, q, id)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, pgx.ErrNoRows
		}
		return nil, nil
	}, audit.ActionDeleted, actor)
}

func (m Mutations) write(ctx context.Context, id string, fn func(tx pgx.Tx) (map[string]any, error), action audit.Action, actor string) error {
	err := db.WithTx(ctx, m.DB, func(tx pgx.Tx) error {
		meta, err := fn(tx)
		if err != nil {
			return err
		}
		return audit.Insert(ctx, tx, string(m.Kind), id, action, actor, meta)
	})
	return MapError(err)
}

// MapReadError maps a missing row (or an id Postgres cannot parse) to ErrNotFound.
func MapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || db.IsInvalidInput(err) {
		return ErrNotFound
	}
	return err
}

// MapError folds store errors into the package sentinels.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), db.IsInvalidInput(err):
		return ErrNotFound
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
}
