package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []Message
	failTo map[string]error
}

func (f *fakeSender) Send(_ context.Context, msg Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failTo[msg.To]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, msg)
	return "msg-" + msg.To, nil
}

type fakeRecorder struct {
	kind Kind
	id   string
	res  Result
	err  error
	n    int
}

func (f *fakeRecorder) Record(_ context.Context, kind Kind, recordID string, res Result, dispatchErr error) error {
	f.kind, f.id, f.res, f.err = kind, recordID, res, dispatchErr
	f.n++
	return nil
}

func booking() *BookingDetails {
	return &BookingDetails{
		ID:            "b-1",
		Name:          "Sam Lee",
		Email:         "sam@example.com",
		Phone:         "0400 000 000",
		Address:       "1 Beach Rd",
		Suburb:        "Bondi",
		Service:       "tile-grout",
		PreferredDate: "2026-11-02",
		PreferredTime: "morning",
	}
}

func TestDispatch_BookingSendsAdminAndCustomer(t *testing.T) {
	s := &fakeSender{}
	rec := &fakeRecorder{}
	d := &Dispatcher{Sender: s, Recorder: rec, BusinessName: "Sparkle Co"}

	res, err := d.Dispatch(context.Background(), Request{Kind: KindBooking, Record: booking(), AdminEmail: "ops@example.com"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, map[Role]string{
		RoleAdmin:    "msg-ops@example.com",
		RoleCustomer: "msg-sam@example.com",
	}, res.DeliveryIDs)
	require.Len(t, s.sent, 2)

	admin := s.sent[0]
	assert.Equal(t, "ops@example.com", admin.To)
	assert.Equal(t, "sam@example.com", admin.ReplyTo)
	assert.Equal(t, "New booking request: Tile & Grout - Sam Lee", admin.Subject)
	// html/template escapes the ampersand.
	assert.Contains(t, admin.HTML, "Tile &amp; Grout Cleaning")
	assert.Contains(t, admin.HTML, "Sparkle Co")
	assert.NotContains(t, admin.HTML, "INSTANT BOOKING")

	assert.Equal(t, 1, rec.n)
	assert.Equal(t, KindBooking, rec.kind)
	assert.Equal(t, "b-1", rec.id)
	assert.NoError(t, rec.err)
}

func TestDispatch_InstantBookingBadge(t *testing.T) {
	s := &fakeSender{}
	d := &Dispatcher{Sender: s}

	_, err := d.Dispatch(context.Background(), Request{Kind: KindInstantBooking, Record: booking(), AdminEmail: "ops@example.com"})
	require.NoError(t, err)
	require.Len(t, s.sent, 2)
	assert.Contains(t, s.sent[0].HTML, "INSTANT BOOKING")
	assert.True(t, strings.HasPrefix(s.sent[0].Subject, "New instant booking"))
}

func TestDispatch_QuoteResolvesLegacyServiceNames(t *testing.T) {
	s := &fakeSender{}
	d := &Dispatcher{Sender: s}

	q := &QuoteDetails{ID: "q-1", Name: "Ari", Email: "ari@example.com", Services: []string{"Bond Cleaning", "oven", "pressure-washing"}}
	res, err := d.Dispatch(context.Background(), Request{Kind: KindQuote, Record: q, AdminEmail: "ops@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, s.sent[0].HTML, "End of Lease Cleaning, Oven Cleaning, pressure-washing")
}

func TestDispatch_PartialFailureIsNotSuccess(t *testing.T) {
	s := &fakeSender{failTo: map[string]error{"sam@example.com": errors.New("mailbox unavailable")}}
	rec := &fakeRecorder{}
	d := &Dispatcher{Sender: s, Recorder: rec}

	res, err := d.Dispatch(context.Background(), Request{Kind: KindBooking, Record: booking(), AdminEmail: "ops@example.com"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, map[Role]string{RoleAdmin: "msg-ops@example.com"}, res.DeliveryIDs)
	assert.Equal(t, "mailbox unavailable", res.Failures[RoleCustomer])
	assert.False(t, rec.res.Success)
}

func TestDispatch_AllFailedReturnsError(t *testing.T) {
	d := &Dispatcher{Sender: DisabledSender{}}

	res, err := d.Dispatch(context.Background(), Request{Kind: KindContact, Record: &ContactDetails{ID: "c-1", Name: "Jo", Email: "jo@example.com", Message: "hi"}, AdminEmail: "ops@example.com"})
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Len(t, res.Failures, 2)
}

func TestDispatch_RejectsMismatchedRecord(t *testing.T) {
	s := &fakeSender{}
	d := &Dispatcher{Sender: s}

	_, err := d.Dispatch(context.Background(), Request{Kind: KindQuote, Record: booking()})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = d.Dispatch(context.Background(), Request{Kind: "sms", Record: booking()})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, s.sent)
}

func TestDispatch_NoRecipients(t *testing.T) {
	d := &Dispatcher{Sender: &fakeSender{}}

	_, err := d.Dispatch(context.Background(), Request{Kind: KindContact, Record: &ContactDetails{ID: "c-2", Name: "Anon", Message: "hello"}})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestDispatch_NilSender(t *testing.T) {
	d := &Dispatcher{}
	_, err := d.Dispatch(context.Background(), Request{Kind: KindBooking, Record: booking(), AdminEmail: "ops@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRender_EscapesCustomerInput(t *testing.T) {
	c := &ContactDetails{ID: "c-3", Name: "Eve", Email: "eve@example.com", Message: "<script>alert(1)</script>"}
	adminMsg, customerMsg, err := render(Request{Kind: KindContact, Record: c, AdminEmail: "ops@example.com"}, "Sparkle Co")
	require.NoError(t, err)
	require.NotNil(t, customerMsg)
	assert.NotContains(t, adminMsg.HTML, "<script>")
	assert.Contains(t, adminMsg.HTML, "&lt;script&gt;")
	assert.Equal(t, "New contact message: (no subject)", adminMsg.Subject)
}

func TestDispatch_RejectsTypedNilRecord(t *testing.T) {
	s := &fakeSender{}
	rec := &fakeRecorder{}
	d := &Dispatcher{Sender: s, Recorder: rec}

	for _, r := range []Request{
		{Kind: KindBooking, Record: (*BookingDetails)(nil), AdminEmail: "ops@example.com"},
		{Kind: KindQuote, Record: (*QuoteDetails)(nil), AdminEmail: "ops@example.com"},
		{Kind: KindContact, Record: (*ContactDetails)(nil), AdminEmail: "ops@example.com"},
		{Kind: KindContact, Record: nil, AdminEmail: "ops@example.com"},
	} {
		require.NotPanics(t, func() {
			_, err := d.Dispatch(context.Background(), r)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
	assert.Empty(t, s.sent)
	assert.Equal(t, 4, rec.n)
}

func TestDispatch_CustomerSharesAdminAddress(t *testing.T) {
	var ids []string
	s := &countingSender{ids: &ids}
	d := &Dispatcher{Sender: s}

	b := booking()
	b.Email = "ops@example.com"
	res, err := d.Dispatch(context.Background(), Request{Kind: KindBooking, Record: b, AdminEmail: "ops@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, map[Role]string{RoleAdmin: "msg-1", RoleCustomer: "msg-2"}, res.DeliveryIDs)
}

type countingSender struct {
	ids *[]string
}

func (c *countingSender) Send(context.Context, Message) (string, error) {
	id := fmt.Sprintf("msg-%d", len(*c.ids)+1)
	*c.ids = append(*c.ids, id)
	return id, nil
}
