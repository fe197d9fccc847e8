// Package contact stores messages from the public contact form.
package contact

import (
	"time"

	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Message struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Message    string            `json:"message"`
	Status     submission.Status `json:"status"`
	AdminNotes *string           `json:"adminNotes"`
	AssignedTo *string           `json:"assignedTo"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func (m *Message) Notification() *notify.ContactDetails {
	return &notify.ContactDetails{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Subject: m.Subject,
		Message: m.Message,
	}
}
