package quote

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/catalog"
	"cleanbook/internal/metrics"
	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Inserter interface {
	Insert(ctx context.Context, q *Quote) error
}

type AmountSetter interface {
	SetQuotedAmount(ctx context.Context, id string, amount decimal.Decimal, actor string) error
}

// Handlers serves the public quote form and the admin price update.
type Handlers struct {
	Quotes     Inserter
	Amounts    AmountSetter
	Notifier   submission.Notifier
	AdminEmail string
	Log        *zap.Logger
}

type CreateRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Email        string   `json:"email" validate:"required,email,max=254"`
	Phone        string   `json:"phone" validate:"required,max=40"`
	Address      string   `json:"address" validate:"omitempty,max=500"`
	PropertyType string   `json:"propertyType" validate:"omitempty,max=60"`
	Frequency    string   `json:"frequency" validate:"omitempty,oneof=once weekly fortnightly monthly"`
	Services     []string `json:"services" validate:"required,min=1,max=16,dive,service"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if fields := api.Validate(req); fields != nil {
		api.WriteValidationError(w, fields)
		return
	}

	q := &Quote{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Frequency:    req.Frequency,
		Services:     canonicalServices(req.Services),
		Description:  req.Description,
	}
	if err := h.Quotes.Insert(r.Context(), q); err != nil {
		if h.Log != nil {
			h.Log.Error("insert quote failed", zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not save quote request")
		return
	}

	submission.Announce(w, r, h.Notifier, h.Log, submission.KindQuote, q.ID, q.Status, notify.Request{
		Kind:       notify.KindQuote,
		Record:     q.Notification(),
		AdminEmail: h.AdminEmail,
	})
}

// canonicalServices maps aliases to ids and drops repeats, keeping first-seen order.
func canonicalServices(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		id := catalog.Canonicalize(s)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SetAmountRequest takes the amount under the camelCase key used by the rest of the
// admin API, or under the column name quoted_amount.
type SetAmountRequest struct {
	QuotedAmount       string `json:"quotedAmount"`
	QuotedAmountColumn string `json:"quoted_amount"`
}

func (req SetAmountRequest) amount() string {
	if req.QuotedAmount != "" {
		return req.QuotedAmount
	}
	return req.QuotedAmountColumn
}

func (h Handlers) SetAmount(w http.ResponseWriter, r *http.Request) {
	p := api.AdminFromContext(r.Context())
	if p == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin session")
		return
	}
	id := chi.URLParam(r, "id")
	if !submission.ValidID(id) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "quote not found")
		return
	}

	var req SetAmountRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	amount, err := ParseAmount(req.amount())
	if err != nil {
		api.WriteValidationError(w, map[string]string{"quotedAmount": "must be a non-negative amount with at most 2 decimal places"})
		return
	}

	err = h.Amounts.SetQuotedAmount(r.Context(), id, amount, p.Actor())
	metrics.AdminMutations.WithLabelValues(string(submission.KindQuote), "amount", submission.Outcome(err)).Inc()
	switch {
	case err == nil:
		api.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "quotedAmount": amount.StringFixed(2)})
	case errors.Is(err, submission.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "quote not found")
	default:
		if h.Log != nil {
			h.Log.Error("set quoted amount failed", zap.String("id", id), zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "UPDATE_FAILED", "update failed")
	}
}
