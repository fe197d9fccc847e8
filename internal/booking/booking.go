// Package booking stores booking requests from the public booking and instant-booking forms.
package booking

import (
	"time"

	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Booking struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	Suburb        string            `json:"suburb,omitempty"`
	Service       string            `json:"service"`
	PreferredDate string            `json:"preferredDate"`
	PreferredTime string            `json:"preferredTime,omitempty"`
	PropertyType  string            `json:"propertyType,omitempty"`
	Bedrooms      *int              `json:"bedrooms,omitempty"`
	Bathrooms     *int              `json:"bathrooms,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Instant       bool              `json:"instant"`
	Status        submission.Status `json:"status"`
	AdminNotes    *string           `json:"adminNotes"`
	AssignedTo    *string           `json:"assignedTo"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Notification is the dispatch payload for b.
func (b *Booking) Notification() *notify.BookingDetails {
	return &notify.BookingDetails{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		Suburb:        b.Suburb,
		Service:       b.Service,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		PropertyType:  b.PropertyType,
		Bedrooms:      deref(b.Bedrooms),
		Bathrooms:     deref(b.Bathrooms),
		Notes:         b.Notes,
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
