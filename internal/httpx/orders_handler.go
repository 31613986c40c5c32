package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type OrderService interface {
	Create(ctx context.Context, caller domain.Identity, in orders.CreateInput) (orders.Order, bool, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]orders.Order, error)
	GetMine(ctx context.Context, caller domain.Identity, id int64) (orders.Order, error)
}

type OrdersHandler struct {
	Svc OrderService
	Log logrus.FieldLogger
}

const msgOrderCreated = "Order created successfully"

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	caller := domain.IdentityFrom(r.Context())
	if err := caller.Require(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in orders.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	in.IdempotencyKey = r.Header.Get("Idempotency-Key")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// A replayed Idempotency-Key answers 200 with the order the key first created.
	o, existed, err := h.Svc.Create(ctx, caller, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{"message": msgOrderCreated, "order": o})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Svc.ListMine(ctx, domain.IdentityFrom(ctx))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	caller := domain.IdentityFrom(r.Context())
	if err := caller.Require(); err != nil {
		writeError(w, h.Log, err)
		return
	}
	id, err := pathID(r, "Order not found")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Svc.GetMine(ctx, caller, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}
