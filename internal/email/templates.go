// File: internal/email/templates.go
package email

import (
	"fmt"
	"time"
)

const dateLayout = "Monday, 2 January 2006 at 3:04 PM"

// BookingDetails carries the fields rendered into booking-related mail.
type BookingDetails struct {
	PatientName  string
	PatientEmail string
	PatientPhone string
	DoctorName   string
	Specialty    string
	Date         time.Time
}

// DoctorBookingNotice builds the new-appointment notice sent to the doctor.
func DoctorBookingNotice(d BookingDetails) Message {
	body := fmt.Sprintf(`
		<h2>New Appointment Request</h2>
		<p>A new appointment has been booked with you.</p>
		<ul>
			<li><strong>Patient:</strong> %s</li>
			<li><strong>Email:</strong> %s</li>
			<li><strong>Phone:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
		</ul>
		<p>Please log in to review the appointment.</p>`,
		d.PatientName, d.PatientEmail, d.PatientPhone, d.Date.Format(dateLayout))
	return Message{
		Subject:  fmt.Sprintf("New appointment: %s on %s", d.PatientName, d.Date.Format("2 Jan 2006")),
		HTMLBody: body,
		BCCAdmin: true,
	}
}

// PatientBookingConfirmation builds the confirmation sent to the patient.
func PatientBookingConfirmation(d BookingDetails) Message {
	body := fmt.Sprintf(`
		<h2>Appointment Received</h2>
		<p>Dear %s,</p>
		<p>Your appointment with <strong>Dr. %s</strong> (%s) has been received
		and is pending confirmation.</p>
		<p><strong>Date:</strong> %s</p>
		<p>We will contact you if anything changes. Thank you for choosing us.</p>`,
		d.PatientName, d.DoctorName, d.Specialty, d.Date.Format(dateLayout))
	return Message{
		Subject:  "Your appointment request has been received",
		HTMLBody: body,
	}
}

// AppointmentReminder builds the day-before reminder sent to the patient.
func AppointmentReminder(d BookingDetails) Message {
	body := fmt.Sprintf(`
		<h2>Appointment Reminder</h2>
		<p>Dear %s,</p>
		<p>This is a reminder of your upcoming appointment with
		<strong>Dr. %s</strong>.</p>
		<p><strong>Date:</strong> %s</p>`,
		d.PatientName, d.DoctorName, d.Date.Format(dateLayout))
	return Message{
		Subject:  "Reminder: your appointment tomorrow",
		HTMLBody: body,
	}
}
