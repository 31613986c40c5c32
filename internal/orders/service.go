package orders

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/events"
	"github.com/ariefcatur/queencare-api/internal/metrics"
	"github.com/sirupsen/logrus"
)

const msgRequired = "Products, total_price, and payment_method are required"

// maxIdempotencyKey matches orders.idempotency_key VARCHAR(255).
const maxIdempotencyKey = 255

type Service struct {
	Repo   Repository
	Events *events.Emitter
	Log    logrus.FieldLogger
}

// Create places an order for caller. Products are kept exactly as sent and
// TotalPrice is trusted; neither is checked against the catalog. A repeated
// IdempotencyKey returns the caller's earlier order with existed set.
func (s *Service) Create(ctx context.Context, caller domain.Identity, in CreateInput) (o Order, existed bool, err error) {
	if err := caller.Require(); err != nil {
		return Order{}, false, err
	}
	products, ok := parseProducts(in.Products)
	if !ok || in.TotalPrice == nil || *in.TotalPrice == 0 || in.PaymentMethod == "" {
		return Order{}, false, domain.InvalidInput(msgRequired)
	}
	if err := domain.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return Order{}, false, err
	}
	if len(in.IdempotencyKey) > maxIdempotencyKey {
		return Order{}, false, domain.InvalidInput("Idempotency-Key is too long")
	}

	o, existed, err = s.Repo.Create(ctx, Order{
		UserID:         caller.UserID,
		Products:       products,
		TotalPrice:     *in.TotalPrice,
		PaymentMethod:  in.PaymentMethod,
		Status:         StatusPending,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Order{}, false, err
	}
	if existed {
		return o, true, nil
	}

	metrics.RecordOrderPlaced(string(o.PaymentMethod))
	s.Events.Emit(ctx, events.TopicOrderPlaced, events.EventOrderPlaced, strconv.FormatInt(o.ID, 10),
		events.OrderPlacedPayload{
			OrderID:       o.ID,
			UserID:        o.UserID,
			ItemCount:     len(o.Products),
			TotalPrice:    o.TotalPrice,
			PaymentMethod: string(o.PaymentMethod),
		})
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"order_id": o.ID, "user_id": o.UserID}).Info("order placed")
	}
	return o, false, nil
}

// ListMine returns the caller's orders, newest first.
func (s *Service) ListMine(ctx context.Context, caller domain.Identity) ([]Order, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(ctx, caller.UserID)
}

func (s *Service) GetMine(ctx context.Context, caller domain.Identity, id int64) (Order, error) {
	if err := caller.Require(); err != nil {
		return Order{}, err
	}
	return s.Repo.GetByUser(ctx, id, caller.UserID)
}

// parseProducts accepts any non-empty JSON array; element shape is not inspected.
func parseProducts(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	return items, true
}
