// Package quote stores quote requests and the price an admin quotes back.
package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Quote struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address,omitempty"`
	PropertyType string              `json:"propertyType,omitempty"`
	Frequency    string              `json:"frequency,omitempty"`
	Services     []string            `json:"services"`
	Description  string              `json:"description,omitempty"`
	QuotedAmount decimal.NullDecimal `json:"quotedAmount"`
	Status       submission.Status   `json:"status"`
	AdminNotes   *string             `json:"adminNotes"`
	AssignedTo   *string             `json:"assignedTo"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func (q *Quote) Notification() *notify.QuoteDetails {
	return &notify.QuoteDetails{
		ID:           q.ID,
		Name:         q.Name,
		Email:        q.Email,
		Phone:        q.Phone,
		Address:      q.Address,
		PropertyType: q.PropertyType,
		Frequency:    q.Frequency,
		Services:     q.Services,
		Description:  q.Description,
	}
}

// numeric(10,2)
var maxAmount = decimal.New(1, 8)

// ParseAmount accepts a non-negative amount below 100,000,000 with at most two decimal places.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if d.IsNegative() || !d.Equal(d.Round(2)) || d.GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d.Round(2), nil
}
