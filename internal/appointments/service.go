package appointments

import (
	"context"
	"strconv"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/events"
	"github.com/ariefcatur/queencare-api/internal/metrics"
	"github.com/sirupsen/logrus"
)

const msgRequired = "Doctor ID, appointment datetime, and payment method are required"

type Service struct {
	Repo   Repository
	Events *events.Emitter
	Log    logrus.FieldLogger
}

// Create books an appointment for caller. Checks run in a fixed order:
// auth, required fields, payment method, doctor existence, datetime format.
// There is no slot-conflict check.
func (s *Service) Create(ctx context.Context, caller domain.Identity, in CreateInput) (Appointment, error) {
	if err := caller.Require(); err != nil {
		return Appointment{}, err
	}
	if in.DoctorID == nil || *in.DoctorID == 0 || in.AppointmentDatetime == "" || in.PaymentMethod == "" {
		return Appointment{}, domain.InvalidInput(msgRequired)
	}
	if err := domain.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return Appointment{}, err
	}
	doctor, err := s.Repo.DoctorByID(ctx, *in.DoctorID)
	if err != nil {
		return Appointment{}, err
	}
	at, err := domain.ParseTimestamp(in.AppointmentDatetime)
	if err != nil {
		return Appointment{}, domain.InvalidInput("Invalid datetime format")
	}

	notes := ""
	if in.Notes != nil {
		notes = *in.Notes
	}
	a, err := s.Repo.Create(ctx, Appointment{
		UserID:              caller.UserID,
		DoctorID:            doctor.ID,
		AppointmentDatetime: at,
		PaymentMethod:       in.PaymentMethod,
		Status:              StatusScheduled,
		Notes:               notes,
	})
	if err != nil {
		return Appointment{}, err
	}

	metrics.RecordAppointmentBooked(string(a.PaymentMethod))
	s.Events.Emit(ctx, events.TopicAppointmentBooked, events.EventAppointmentBooked, strconv.FormatInt(a.ID, 10),
		events.AppointmentBookedPayload{
			AppointmentID:       a.ID,
			UserID:              a.UserID,
			DoctorID:            a.DoctorID,
			AppointmentDatetime: a.AppointmentDatetime,
			PaymentMethod:       string(a.PaymentMethod),
		})
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"appointment_id": a.ID,
			"user_id":        a.UserID,
			"doctor_id":      a.DoctorID,
		}).Info("appointment booked")
	}
	return a, nil
}

// ListMine returns the caller's appointments, latest appointment time first,
// each with its doctor when that doctor still exists.
func (s *Service) ListMine(ctx context.Context, caller domain.Identity) ([]Booking, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, caller.UserID)
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return s.Repo.ListDoctors(ctx)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (Doctor, error) {
	return s.Repo.DoctorByID(ctx, id)
}
