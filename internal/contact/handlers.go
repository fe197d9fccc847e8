package contact

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Inserter interface {
	Insert(ctx context.Context, m *Message) error
}

type Handlers struct {
	Messages   Inserter
	Notifier   submission.Notifier
	AdminEmail string
	Log        *zap.Logger
}

type CreateRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
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

	m := &Message{Name: req.Name, Email: req.Email, Phone: req.Phone, Subject: req.Subject, Message: req.Message}
	if err := h.Messages.Insert(r.Context(), m); err != nil {
		if h.Log != nil {
			h.Log.Error("insert contact message failed", zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not save message")
		return
	}

	submission.Announce(w, r, h.Notifier, h.Log, submission.KindContact, m.ID, m.Status, notify.Request{
		Kind:       notify.KindContact,
		Record:     m.Notification(),
		AdminEmail: h.AdminEmail,
	})
}
