package orders

import (
	"encoding/json"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
)

type Order struct {
	ID            int64
	UserID        int64
	Products      []json.RawMessage // caller-supplied snapshots, stored verbatim
	TotalPrice    float64
	PaymentMethod domain.PaymentMethod
	Status        Status
	CreatedAt     time.Time

	// IdempotencyKey is the client's Idempotency-Key header, unique per user. Never serialized.
	IdempotencyKey string
}

type orderJSON struct {
	ID            int64                `json:"id"`
	UserID        int64                `json:"user_id"`
	Products      []json.RawMessage    `json:"products"`
	TotalPrice    float64              `json:"total_price"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Status        Status               `json:"status"`
	CreatedAt     *string              `json:"created_at"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	products := o.Products
	if products == nil {
		products = []json.RawMessage{}
	}
	return json.Marshal(orderJSON{
		ID:            o.ID,
		UserID:        o.UserID,
		Products:      products,
		TotalPrice:    o.TotalPrice,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     domain.FormatTimestamp(o.CreatedAt),
	})
}

// CreateInput is the decoded POST /orders body. Pointer and raw fields keep
// "absent" distinguishable from zero values.
type CreateInput struct {
	Products      json.RawMessage      `json:"products"`
	TotalPrice    *float64             `json:"total_price"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`

	IdempotencyKey string `json:"-"`
}
