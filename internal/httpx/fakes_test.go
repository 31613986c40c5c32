package httpx

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ariefcatur/queencare-api/internal/appointments"
	"github.com/ariefcatur/queencare-api/internal/catalog"
	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/orders"
	"github.com/ariefcatur/queencare-api/internal/users"
)

// store is an in-memory stand-in for Postgres shared by the fake repos.
type store struct {
	mu           sync.Mutex
	seq          int64
	users        map[int64]users.User
	orders       []orders.Order
	doctors      map[int64]appointments.Doctor
	appointments []appointments.Appointment
	products     []catalog.Product
	doctorCalls  int

	// createDelay stretches order inserts so concurrent requests overlap.
	createDelay time.Duration
}

func newStore() *store {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &store{
		users: map[int64]users.User{},
		doctors: map[int64]appointments.Doctor{
			1: {ID: 1, Name: "Dr. Layla Hassan", Specialty: "Dermatology", AvailableTimes: `["09:00","10:00"]`, CreatedAt: now},
			2: {ID: 2, Name: "Dr. Omar Khalil", Specialty: "Cosmetology", AvailableTimes: `["14:00"]`, CreatedAt: now},
		},
		products: []catalog.Product{
			{ID: 1, Name: "Rose Serum", Price: 45000, Category: "skincare", CreatedAt: now},
			{ID: 2, Name: "Velvet Lipstick", Price: 18000, Category: "makeup", CreatedAt: now},
		},
	}
}

func (s *store) next() int64 { s.seq++; return s.seq }

type userRepo struct{ *store }

func (r userRepo) Create(_ context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email {
			return users.User{}, domain.Conflict("Email already registered")
		}
	}
	u.ID = r.next()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return u, nil
}

func (r userRepo) ByEmail(_ context.Context, email string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, domain.NotFound("User not found")
}

func (r userRepo) ByID(_ context.Context, id int64) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return users.User{}, domain.NotFound("User not found")
	}
	return u, nil
}

type orderRepo struct{ *store }

// Create holds the lock across check and insert, like the unique
// (user_id, idempotency_key) index does for concurrent transactions.
func (r orderRepo) Create(_ context.Context, o orders.Order) (orders.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	time.Sleep(r.createDelay)
	if o.IdempotencyKey != "" {
		for _, prev := range r.orders {
			if prev.UserID == o.UserID && prev.IdempotencyKey == o.IdempotencyKey {
				return prev, true, nil
			}
		}
	}
	o.ID = r.next()
	o.CreatedAt = time.Now().UTC()
	r.orders = append(r.orders, o)
	return o, false, nil
}

func (r orderRepo) ListByUser(_ context.Context, userID int64) ([]orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []orders.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r orderRepo) GetByUser(_ context.Context, id, userID int64) (orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return orders.Order{}, domain.NotFound("Order not found")
}

type appointmentRepo struct{ *store }

func (r appointmentRepo) ListDoctors(context.Context) ([]appointments.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctorCalls++
	out := make([]appointments.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r appointmentRepo) DoctorByID(_ context.Context, id int64) (appointments.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return appointments.Doctor{}, domain.NotFound("Doctor not found")
	}
	return d, nil
}

func (r appointmentRepo) Create(_ context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.next()
	a.CreatedAt = time.Now().UTC()
	r.appointments = append(r.appointments, a)
	return a, nil
}

func (r appointmentRepo) ListByUser(_ context.Context, userID int64) ([]appointments.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []appointments.Booking{}
	for _, a := range r.appointments {
		if a.UserID != userID {
			continue
		}
		b := appointments.Booking{Appointment: a}
		if d, ok := r.doctors[a.DoctorID]; ok {
			b.Doctor = &d
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDatetime.After(out[j].AppointmentDatetime)
	})
	return out, nil
}

type catalogRepo struct{ *store }

func (r catalogRepo) ListProducts(_ context.Context, category string) ([]catalog.Product, error) {
	out := []catalog.Product{}
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r catalogRepo) Product(_ context.Context, id int64) (catalog.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, domain.NotFound("Product not found")
}

func (r catalogRepo) Categories(context.Context) ([]string, error) {
	return []string{"makeup", "skincare"}, nil
}
