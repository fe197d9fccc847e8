// Package notify renders and sends the emails triggered by public submissions.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// Kind discriminates dispatch requests.
type Kind string

const (
	KindBooking        Kind = "booking"
	KindInstantBooking Kind = "instant_booking"
	KindQuote          Kind = "quote"
	KindContact        Kind = "contact"
)

var (
	ErrNotConfigured = errors.New("email dispatch not configured")
	ErrNoRecipients  = errors.New("no recipients")
	ErrBadRequest    = errors.New("invalid dispatch request")
)

// Request is one dispatch: the record payload plus the admin address to notify.
// Record must be *BookingDetails for booking kinds, *QuoteDetails or *ContactDetails.
type Request struct {
	Kind       Kind   `json:"type"`
	Record     any    `json:"record"`
	AdminEmail string `json:"adminEmail"`
}

// Role names a recipient of a dispatch. The admin and customer may share an address.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Result reports delivery per recipient role. Success is true only when every recipient was sent.
type Result struct {
	Success     bool              `json:"success"`
	DeliveryIDs map[Role]string `json:"deliveryIds,omitempty"`
	Failures    map[Role]string `json:"failures,omitempty"`
}

type BookingDetails struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	Suburb        string
	Service       string
	PreferredDate string
	PreferredTime string
	PropertyType  string
	Bedrooms      int
	Bathrooms     int
	Notes         string
}

type QuoteDetails struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	PropertyType string
	Frequency    string
	Services     []string
	Description  string
}

type ContactDetails struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Message is one rendered email.
type Message struct {
	Role    Role
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// DisabledSender is used when no mail provider is configured.
type DisabledSender struct{}

func (DisabledSender) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}

func recordID(rec any) string {
	switch v := rec.(type) {
	case *BookingDetails:
		if v != nil {
			return v.ID
		}
	case *QuoteDetails:
		if v != nil {
			return v.ID
		}
	case *ContactDetails:
		if v != nil {
			return v.ID
		}
	}
	return ""
}

func customerEmail(rec any) string {
	switch v := rec.(type) {
	case *BookingDetails:
		return v.Email
	case *QuoteDetails:
		return v.Email
	case *ContactDetails:
		return v.Email
	default:
		return ""
	}
}

func (r Request) validate() error {
	var ok bool
	switch r.Kind {
	case KindBooking, KindInstantBooking:
		v, is := r.Record.(*BookingDetails)
		ok = is && v != nil
	case KindQuote:
		v, is := r.Record.(*QuoteDetails)
		ok = is && v != nil
	case KindContact:
		v, is := r.Record.(*ContactDetails)
		ok = is && v != nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrBadRequest, r.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: record %T does not match kind %q", ErrBadRequest, r.Record, r.Kind)
	}
	return nil
}
