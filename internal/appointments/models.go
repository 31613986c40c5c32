package appointments

import (
	"encoding/json"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
)

type Status string

// Appointments start scheduled; clinic staff move them on outside this service.
const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Doctor struct {
	ID        int64
	Name      string
	Specialty string
	// AvailableTimes is the stored JSON array of "HH:MM" strings. It is
	// advertised as-is and never checked against bookings.
	AvailableTimes string
	CreatedAt      time.Time
}

func (d Doctor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             int64   `json:"id"`
		Name           string  `json:"name"`
		Specialty      string  `json:"specialty"`
		AvailableTimes string  `json:"available_times"`
		CreatedAt      *string `json:"created_at"`
	}{d.ID, d.Name, d.Specialty, d.AvailableTimes, domain.FormatTimestamp(d.CreatedAt)})
}

type Appointment struct {
	ID                  int64
	UserID              int64
	DoctorID            int64
	AppointmentDatetime time.Time
	PaymentMethod       domain.PaymentMethod
	Status              Status
	Notes               string
	CreatedAt           time.Time
}

// Booking is an appointment as listed to its owner. Doctor is nil when the
// referenced doctor no longer exists.
type Booking struct {
	Appointment
	Doctor *Doctor
}

type appointmentJSON struct {
	ID                  int64                `json:"id"`
	UserID              int64                `json:"user_id"`
	DoctorID            int64                `json:"doctor_id"`
	AppointmentDatetime *string              `json:"appointment_datetime"`
	PaymentMethod       domain.PaymentMethod `json:"payment_method"`
	Status              Status               `json:"status"`
	Notes               string               `json:"notes"`
	CreatedAt           *string              `json:"created_at"`
}

func (a Appointment) view() appointmentJSON {
	return appointmentJSON{
		ID:                  a.ID,
		UserID:              a.UserID,
		DoctorID:            a.DoctorID,
		AppointmentDatetime: domain.FormatTimestamp(a.AppointmentDatetime),
		PaymentMethod:       a.PaymentMethod,
		Status:              a.Status,
		Notes:               a.Notes,
		CreatedAt:           domain.FormatTimestamp(a.CreatedAt),
	}
}

func (a Appointment) MarshalJSON() ([]byte, error) { return json.Marshal(a.view()) }

func (b Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		appointmentJSON
		Doctor *Doctor `json:"doctor"`
	}{b.Appointment.view(), b.Doctor})
}

// CreateInput is the decoded POST /appointments body.
type CreateInput struct {
	DoctorID            *int64               `json:"doctor_id"`
	AppointmentDatetime string               `json:"appointment_datetime"`
	PaymentMethod       domain.PaymentMethod `json:"payment_method"`
	Notes               *string              `json:"notes"`
}
