package booking

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cleanbook/internal/api"
	"cleanbook/internal/catalog"
	"cleanbook/internal/notify"
	"cleanbook/internal/submission"
)

type Inserter interface {
	Insert(ctx context.Context, b *Booking) error
}

// Handlers serves the public booking forms.
type Handlers struct {
	Bookings   Inserter
	Notifier   submission.Notifier
	AdminEmail string
	Log        *zap.Logger
}

type CreateRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone" validate:"required,max=40"`
	Address       string `json:"address" validate:"required,max=500"`
	Suburb        string `json:"suburb" validate:"omitempty,max=120"`
	Service       string `json:"service" validate:"required,service"`
	PreferredDate string `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	PreferredTime string `json:"preferredTime" validate:"omitempty,max=40"`
	PropertyType  string `json:"propertyType" validate:"omitempty,max=60"`
	Bedrooms      *int   `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms     *int   `json:"bathrooms" validate:"omitempty,min=0,max=20"`
	Notes         string `json:"notes" validate:"omitempty,max=5000"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// CreateInstant is the instant-booking flow: same record, flagged instant, with its own notification.
func (h Handlers) CreateInstant(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h Handlers) create(w http.ResponseWriter, r *http.Request, instant bool) {
	var req CreateRequest
	if err := api.DecodeJSON(w, r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if fields := api.Validate(req); fields != nil {
		api.WriteValidationError(w, fields)
		return
	}

	b := &Booking{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Suburb:        req.Suburb,
		Service:       catalog.Canonicalize(req.Service),
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		PropertyType:  req.PropertyType,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Notes:         req.Notes,
		Instant:       instant,
	}
	if err := h.Bookings.Insert(r.Context(), b); err != nil {
		if h.Log != nil {
			h.Log.Error("insert booking failed", zap.Bool("instant", instant), zap.Error(err))
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not save booking")
		return
	}

	kind := notify.KindBooking
	if instant {
		kind = notify.KindInstantBooking
	}
	submission.Announce(w, r, h.Notifier, h.Log, submission.KindBooking, b.ID, b.Status, notify.Request{
		Kind:       kind,
		Record:     b.Notification(),
		AdminEmail: h.AdminEmail,
	})
}
