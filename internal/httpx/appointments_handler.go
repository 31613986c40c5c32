package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/queencare-api/internal/appointments"
	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AppointmentService interface {
	Create(ctx context.Context, caller domain.Identity, in appointments.CreateInput) (appointments.Appointment, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]appointments.Booking, error)
	ListDoctors(ctx context.Context) ([]appointments.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (appointments.Doctor, error)
}

type AppointmentsHandler struct {
	Svc   AppointmentService
	Cache *redisx.Cache
	Log   logrus.FieldLogger
}

func (h *AppointmentsHandler) Register(r chi.Router) {
	r.Post("/appointments", h.createAppointment)
	r.Get("/appointments", h.listAppointments)
	r.Get("/doctors", h.listDoctors)
	r.Get("/doctors/{id}", h.getDoctor)
}

func (h *AppointmentsHandler) createAppointment(w http.ResponseWriter, r *http.Request) {
	caller := domain.IdentityFrom(r.Context())
	if err := caller.Require(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in appointments.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	a, err := h.Svc.Create(ctx, caller, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Appointment created successfully", "appointment": a})
}

func (h *AppointmentsHandler) listAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Svc.ListMine(ctx, domain.IdentityFrom(ctx))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": list})
}

func (h *AppointmentsHandler) listDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) cache
	if b, ok := h.Cache.Get(ctx, redisx.KeyDoctorsCache); ok {
		writeRawJSON(w, http.StatusOK, b)
		return
	}

	// 2) fallback DB
	list, err := h.Svc.ListDoctors(ctx)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	b, err := json.Marshal(map[string]any{"doctors": list})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.Cache.Set(ctx, redisx.KeyDoctorsCache, b, redisx.TTLListCache)
	writeRawJSON(w, http.StatusOK, b)
}

func (h *AppointmentsHandler) getDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Doctor not found")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	d, err := h.Svc.GetDoctor(ctx, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctor": d})
}
