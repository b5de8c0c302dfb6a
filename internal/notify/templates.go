package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateBookingNotification = "booking_notification"
	TemplateBookingStatus       = "booking_status"
)

var bookingConfirmationTpl = template.Must(template.New(TemplateBookingConfirmation).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Booking Confirmation</h2>
  <p>Dear {{.UserName}},</p>
  <p>Your property visit has been booked.</p>
  <p><strong>Property:</strong> {{.PropertyTitle}}</p>
  <p><strong>Address:</strong> {{.PropertyAddress}}</p>
  <p><strong>Visit Date:</strong> {{.BookingDate}}</p>
  <p>The property owner will contact you to confirm the exact time.</p>
</div>`))

var bookingNotificationTpl = template.Must(template.New(TemplateBookingNotification).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Booking Received</h2>
  <p>You have received a new booking for your property.</p>
  <p><strong>Property:</strong> {{.PropertyTitle}}</p>
  <p><strong>Address:</strong> {{.PropertyAddress}}</p>
  <p><strong>Visit Date:</strong> {{.BookingDate}}</p>
  <p><strong>Visitor:</strong> {{.UserName}}</p>
  <p><strong>Contact:</strong> {{.UserEmail}}</p>
</div>`))

var bookingStatusTpl = template.Must(template.New(TemplateBookingStatus).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Visit {{.StatusUpper}}</h2>
  <p>Dear {{.UserName}},</p>
  {{if eq .Status "confirmed"}}<p>The property owner has approved your visit request.</p>
  {{else if eq .Status "cancelled"}}<p>Unfortunately, the property owner cannot accommodate your visit request.</p>{{end}}
  <p><strong>Property:</strong> {{.PropertyTitle}}</p>
  <p><strong>Address:</strong> {{.PropertyAddress}}</p>
  <p><strong>Date:</strong> {{.BookingDate}}</p>
  <p><strong>Status:</strong> {{.StatusUpper}}</p>
</div>`))

// Render produces the subject and HTML body for a queued email job.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case TemplateBookingConfirmation:
		subject = "Booking Confirmation - PropertyPro"
		tpl = bookingConfirmationTpl
	case TemplateBookingNotification:
		subject = "New Property Visit Booking - PropertyPro"
		tpl = bookingNotificationTpl
	case TemplateBookingStatus:
		if data == nil {
			data = map[string]any{}
		}
		status, _ := data["Status"].(string)
		data["StatusUpper"] = strings.ToUpper(status)
		subject = fmt.Sprintf("Property Visit %s - PropertyPro", strings.ToUpper(status))
		tpl = bookingStatusTpl
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
