package submission

import (
	"errors"
	"fmt"
)

// Kind identifies one family of submission records.
type Kind string

const (
	KindBooking Kind = "booking"
	KindQuote   Kind = "quote"
	KindContact Kind = "contact"
)

var ErrInvalidStatus = errors.New("invalid status")

// Table is the backing table for the kind. Only ever built from the constants above.
func (k Kind) Table() string {
	switch k {
	case KindBooking:
		return "bookings"
	case KindQuote:
		return "quotes"
	case KindContact:
		return "contact_messages"
	default:
		return ""
	}
}

type Status string

const (
	BookingPending    Status = "pending"
	BookingConfirmed  Status = "confirmed"
	BookingInProgress Status = "in_progress"
	BookingCompleted  Status = "completed"
	BookingCancelled  Status = "cancelled"

	QuotePending   Status = "pending"
	QuoteContacted Status = "contacted"
	QuoteQuoted    Status = "quoted"
	QuoteAccepted  Status = "accepted"
	QuoteCompleted Status = "completed"
	QuoteCancelled Status = "cancelled"

	ContactUnread   Status = "unread"
	ContactRead     Status = "read"
	ContactReplied  Status = "replied"
	ContactArchived Status = "archived"
)

// Ordered the way the admin console renders its dropdowns.
var statuses = map[Kind][]Status{
	KindBooking: {BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled},
	KindQuote:   {QuotePending, QuoteContacted, QuoteQuoted, QuoteAccepted, QuoteCompleted, QuoteCancelled},
	KindContact: {ContactUnread, ContactRead, ContactReplied, ContactArchived},
}

var terminal = map[Kind]map[Status]bool{
	KindBooking: {BookingCompleted: true, BookingCancelled: true},
	KindQuote:   {QuoteCompleted: true, QuoteCancelled: true},
	KindContact: {ContactArchived: true},
}

// Statuses returns the closed status set for kind.
func Statuses(k Kind) []Status {
	src := statuses[k]
	out := make([]Status, len(src))
	copy(out, src)
	return out
}

// InitialStatus is the status a public submission is inserted with.
func InitialStatus(k Kind) Status {
	if s := statuses[k]; len(s) > 0 {
		return s[0]
	}
	return ""
}

// ParseStatus accepts s only if it belongs to the status set of kind.
func ParseStatus(k Kind, s string) (Status, error) {
	for _, st := range statuses[k] {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w for %s: %q", ErrInvalidStatus, k, s)
}

func IsTerminal(k Kind, s Status) bool {
	return terminal[k][s]
}
