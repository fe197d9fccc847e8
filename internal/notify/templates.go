package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"cleanbook/internal/catalog"
)

var funcs = template.FuncMap{
	"serviceName":  catalog.ResolveDisplayName,
	"serviceShort": catalog.ResolveShortName,
	"serviceList": func(ids []string) string {
		return strings.Join(catalog.ResolveDisplayNames(ids), ", ")
	},
}

var templates = template.Must(template.New("email").Funcs(funcs).Parse(layoutTemplate + bodyTemplates))

type view struct {
	BusinessName string
	Heading      string
	Body         string
	Instant      bool
	Booking      *BookingDetails
	Quote        *QuoteDetails
	Contact      *ContactDetails
}

// render builds the admin and customer messages for req. The customer message is nil
// when the record carries no customer email.
func render(req Request, businessName string) (adminMsg, customerMsg *Message, err error) {
	v := view{BusinessName: businessName}
	var adminSubject, customerSubject, adminBody, customerBody, replyTo string

	switch rec := req.Record.(type) {
	case *BookingDetails:
		v.Booking = rec
		v.Instant = req.Kind == KindInstantBooking
		replyTo = rec.Email
		label := "booking request"
		if v.Instant {
			label = "instant booking"
		}
		adminSubject = fmt.Sprintf("New %s: %s - %s", label, catalog.ResolveShortName(rec.Service), rec.Name)
		customerSubject = fmt.Sprintf("We've received your %s", label)
		adminBody, customerBody = "booking_admin", "booking_customer"
	case *QuoteDetails:
		v.Quote = rec
		replyTo = rec.Email
		adminSubject = fmt.Sprintf("New quote request from %s", rec.Name)
		customerSubject = "We've received your quote request"
		adminBody, customerBody = "quote_admin", "quote_customer"
	case *ContactDetails:
		v.Contact = rec
		replyTo = rec.Email
		subject := rec.Subject
		if subject == "" {
			subject = "(no subject)"
		}
		adminSubject = fmt.Sprintf("New contact message: %s", subject)
		customerSubject = "Thanks for getting in touch"
		adminBody, customerBody = "contact_admin", "contact_customer"
	default:
		return nil, nil, fmt.Errorf("%w: unsupported record %T", ErrBadRequest, req.Record)
	}

	if req.AdminEmail != "" {
		v.Heading = adminSubject
		html, err := execute(adminBody, v)
		if err != nil {
			return nil, nil, err
		}
		adminMsg = &Message{Role: RoleAdmin, To: req.AdminEmail, ReplyTo: replyTo, Subject: adminSubject, HTML: html, Text: plainText}
	}
	if email := customerEmail(req.Record); email != "" {
		v.Heading = customerSubject
		html, err := execute(customerBody, v)
		if err != nil {
			return nil, nil, err
		}
		customerMsg = &Message{Role: RoleCustomer, To: email, Subject: customerSubject, HTML: html, Text: plainText}
	}
	return adminMsg, customerMsg, nil
}

func execute(body string, v view) (string, error) {
	v.Body = body
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", fmt.Errorf("render %s: %w", body, err)
	}
	return buf.String(), nil
}

const plainText = "Please view this email in an HTML-capable email client."

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Heading}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { border-bottom: 2px solid #0f9d8a; padding-bottom: 10px; margin-bottom: 20px; }
        table { border-collapse: collapse; width: 100%; }
        td { padding: 6px 8px; border-bottom: 1px solid #eee; vertical-align: top; }
        td.label { font-weight: bold; width: 35%; }
        .badge { display: inline-block; padding: 2px 8px; background: #0f9d8a; color: white; border-radius: 4px; font-size: 12px; }
        .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header"><h1>{{.BusinessName}}</h1></div>
    <h2>{{.Heading}}</h2>
    {{if eq .Body "booking_admin"}}{{template "booking_admin" .}}{{end}}
    {{if eq .Body "booking_customer"}}{{template "booking_customer" .}}{{end}}
    {{if eq .Body "quote_admin"}}{{template "quote_admin" .}}{{end}}
    {{if eq .Body "quote_customer"}}{{template "quote_customer" .}}{{end}}
    {{if eq .Body "contact_admin"}}{{template "contact_admin" .}}{{end}}
    {{if eq .Body "contact_customer"}}{{template "contact_customer" .}}{{end}}
    <div class="footer"><p>{{.BusinessName}}</p></div>
</body>
</html>{{end}}`

const bodyTemplates = `
{{define "booking_rows"}}{{with .Booking}}
<table>
    <tr><td class="label">Service</td><td>{{serviceName .Service}}</td></tr>
    <tr><td class="label">Preferred date</td><td>{{.PreferredDate}}{{if .PreferredTime}} ({{.PreferredTime}}){{end}}</td></tr>
    <tr><td class="label">Address</td><td>{{.Address}}{{if .Suburb}}, {{.Suburb}}{{end}}</td></tr>
    {{if .PropertyType}}<tr><td class="label">Property</td><td>{{.PropertyType}}{{if .Bedrooms}}, {{.Bedrooms}} bed{{end}}{{if .Bathrooms}}, {{.Bathrooms}} bath{{end}}</td></tr>{{end}}
    {{if .Notes}}<tr><td class="label">Notes</td><td>{{.Notes}}</td></tr>{{end}}
</table>{{end}}{{end}}

{{define "booking_admin"}}
{{if .Instant}}<p><span class="badge">INSTANT BOOKING</span></p>{{end}}
<table>
    <tr><td class="label">Name</td><td>{{.Booking.Name}}</td></tr>
    <tr><td class="label">Email</td><td>{{.Booking.Email}}</td></tr>
    <tr><td class="label">Phone</td><td>{{.Booking.Phone}}</td></tr>
</table>
{{template "booking_rows" .}}
<p>Reference: {{.Booking.ID}}</p>{{end}}

{{define "booking_customer"}}
<p>Hi {{.Booking.Name}},</p>
<p>Thanks for booking with us. {{if .Instant}}Your booking is locked in and we will confirm the arrival window shortly.{{else}}We will be in touch to confirm your booking.{{end}}</p>
{{template "booking_rows" .}}
<p>Reference: {{.Booking.ID}}</p>{{end}}

{{define "quote_rows"}}{{with .Quote}}
<table>
    <tr><td class="label">Services</td><td>{{serviceList .Services}}</td></tr>
    {{if .Address}}<tr><td class="label">Address</td><td>{{.Address}}</td></tr>{{end}}
    {{if .PropertyType}}<tr><td class="label">Property</td><td>{{.PropertyType}}</td></tr>{{end}}
    {{if .Frequency}}<tr><td class="label">Frequency</td><td>{{.Frequency}}</td></tr>{{end}}
    {{if .Description}}<tr><td class="label">Details</td><td>{{.Description}}</td></tr>{{end}}
</table>{{end}}{{end}}

{{define "quote_admin"}}
<table>
    <tr><td class="label">Name</td><td>{{.Quote.Name}}</td></tr>
    <tr><td class="label">Email</td><td>{{.Quote.Email}}</td></tr>
    <tr><td class="label">Phone</td><td>{{.Quote.Phone}}</td></tr>
</table>
{{template "quote_rows" .}}
<p>Reference: {{.Quote.ID}}</p>{{end}}

{{define "quote_customer"}}
<p>Hi {{.Quote.Name}},</p>
<p>Thanks for your quote request. We will get back to you with a price shortly.</p>
{{template "quote_rows" .}}{{end}}

{{define "contact_admin"}}
<table>
    <tr><td class="label">Name</td><td>{{.Contact.Name}}</td></tr>
    <tr><td class="label">Email</td><td>{{.Contact.Email}}</td></tr>
    {{if .Contact.Phone}}<tr><td class="label">Phone</td><td>{{.Contact.Phone}}</td></tr>{{end}}
    <tr><td class="label">Message</td><td>{{.Contact.Message}}</td></tr>
</table>{{end}}

{{define "contact_customer"}}
<p>Hi {{.Contact.Name}},</p>
<p>Thanks for your message. We usually reply within one business day.</p>{{end}}
`
