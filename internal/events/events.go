package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced       = "OrderPlaced"
	EventAppointmentBooked = "AppointmentBooked"
	EventUserRegistered    = "UserRegistered"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g. "queencare-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // entity id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID       int64   `json:"order_id"`
	UserID        int64   `json:"user_id"`
	ItemCount     int     `json:"item_count"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
}

type AppointmentBookedPayload struct {
	AppointmentID       int64     `json:"appointment_id"`
	UserID              int64     `json:"user_id"`
	DoctorID            int64     `json:"doctor_id"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	PaymentMethod       string    `json:"payment_method"`
}

type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
