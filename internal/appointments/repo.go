package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
	DoctorByID(ctx context.Context, id int64) (Doctor, error)
	Create(ctx context.Context, a Appointment) (Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]Booking, error)
}

type Repo struct{ DB postgres.DB }

var _ Repository = (*Repo)(nil)

func (r *Repo) ListDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, specialty, available_times, created_at
	                              FROM doctors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Doctor{}
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.AvailableTimes, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) DoctorByID(ctx context.Context, id int64) (Doctor, error) {
	var d Doctor
	err := r.DB.QueryRow(ctx, `SELECT id, name, specialty, available_times, created_at
	                           FROM doctors WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Specialty, &d.AvailableTimes, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Doctor{}, domain.NotFound("Doctor not found")
	}
	return d, err
}

func (r *Repo) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	err := postgres.InTx(ctx, r.DB, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `
			INSERT INTO appointments(user_id, doctor_id, appointment_datetime, payment_method, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, status, created_at`,
			a.UserID, a.DoctorID, a.AppointmentDatetime, string(a.PaymentMethod), string(a.Status), a.Notes,
		).Scan(&a.ID, &status, &a.CreatedAt)
		a.Status = Status(status)
		return err
	})
	if err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// ListByUser left-joins doctors so a removed doctor yields a nil Booking.Doctor
// instead of dropping the appointment.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Booking, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT a.id, a.user_id, a.doctor_id, a.appointment_datetime, a.payment_method, a.status,
		       COALESCE(a.notes, ''), a.created_at,
		       d.id, d.name, d.specialty, d.available_times, d.created_at
		FROM appointments a
		LEFT JOIN doctors d ON d.id = a.doctor_id
		WHERE a.user_id=$1
		ORDER BY a.appointment_datetime DESC, a.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		var (
			b                     Booking
			method, status        string
			docID                 *int64
			docName, docSpecialty *string
			docTimes              *string
			docCreated            *time.Time
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.DoctorID, &b.AppointmentDatetime, &method, &status,
			&b.Notes, &b.CreatedAt,
			&docID, &docName, &docSpecialty, &docTimes, &docCreated,
		); err != nil {
			return nil, err
		}
		b.PaymentMethod = domain.PaymentMethod(method)
		b.Status = Status(status)
		if docID != nil {
			b.Doctor = &Doctor{
				ID:             *docID,
				Name:           deref(docName),
				Specialty:      deref(docSpecialty),
				AvailableTimes: deref(docTimes),
			}
			if docCreated != nil {
				b.Doctor.CreatedAt = *docCreated
			}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
