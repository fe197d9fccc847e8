package quote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/internal/audit"
	"cleanbook/internal/submission"
	"cleanbook/pkg/db/dbtest"
)

func TestRepository_SetQuotedAmount(t *testing.T) {
	pool := dbtest.Open(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	q := &Quote{Name: "Ari", Email: "ari@example.com", Phone: "0400 111 222", Services: []string{"oven", "window"}}
	require.NoError(t, repo.Insert(ctx, q))
	require.NotEmpty(t, q.ID)
	assert.False(t, q.QuotedAmount.Valid)

	amount, err := ParseAmount("240.5")
	require.NoError(t, err)
	require.NoError(t, repo.SetQuotedAmount(ctx, q.ID, amount, "admin:ops@example.com"))

	got, err := repo.Get(ctx, q.ID)
	require.NoError(t, err)
	require.True(t, got.QuotedAmount.Valid)
	assert.Equal(t, "240.50", got.QuotedAmount.Decimal.StringFixed(2))
	assert.Equal(t, submission.Status("pending"), got.Status, "status is left alone")
	assert.True(t, got.UpdatedAt.After(q.UpdatedAt) || got.UpdatedAt.Equal(q.UpdatedAt))

	var stored string
	require.NoError(t, pool.QueryRow(ctx, `SELECT quoted_amount::text FROM quotes WHERE id = $1`, q.ID).Scan(&stored))
	assert.Equal(t, "240.50", stored)

	require.NoError(t, repo.SetQuotedAmount(ctx, q.ID, decimal.RequireFromString("99.99"), "admin:ops@example.com"))

	entries, err := audit.NewRepository(pool).ListByRecord(ctx, string(submission.KindQuote), q.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionAmountSet, entries[0].Action)
	assert.JSONEq(t, `{"from":"240.50","to":"99.99"}`, string(entries[0].Metadata))
	assert.JSONEq(t, `{"from":null,"to":"240.50"}`, string(entries[1].Metadata))
}

func TestRepository_SetQuotedAmountMissing(t *testing.T) {
	pool := dbtest.Open(t)
	repo := NewRepository(pool)

	err := repo.SetQuotedAmount(context.Background(), uuid.NewString(), decimal.RequireFromString("10"), "admin:ops@example.com")
	assert.ErrorIs(t, err, submission.ErrNotFound)
}

func TestRepository_ListFiltersByStatus(t *testing.T) {
	pool := dbtest.Open(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	q := &Quote{Name: "Kim", Email: "kim@example.com", Phone: "0400 333 444", Services: []string{"carpet"}}
	require.NoError(t, repo.Insert(ctx, q))
	require.NoError(t, repo.SetStatus(ctx, q.ID, submission.QuoteContacted, "admin:ops@example.com"))

	items, err := repo.List(ctx, submission.ListFilter{Status: submission.QuoteContacted, Limit: submission.MaxListLimit})
	require.NoError(t, err)
	found := false
	for _, it := range items {
		assert.Equal(t, submission.QuoteContacted, it.Status)
		if it.ID == q.ID {
			found = true
		}
	}
	assert.True(t, found)
}
