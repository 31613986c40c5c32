package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/ariefcatur/queencare-api/internal/postgres"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, o Order) (Order, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	GetByUser(ctx context.Context, id, userID int64) (Order, error)
}

type Repo struct{ DB postgres.DB }

var _ Repository = (*Repo)(nil)

const orderColumns = `id, user_id, products_json, total_price, payment_method, status, created_at`

// Create inserts o in its own transaction and returns it with the
// generated id, status and created_at filled in. When o carries an
// idempotency key the caller already used, the stored order is returned
// instead and existed is true. The unique index is the source of truth, so
// concurrent retries wait on the first insert rather than racing it.
func (r *Repo) Create(ctx context.Context, o Order) (Order, bool, error) {
	var existed bool
	products, err := json.Marshal(o.Products)
	if err != nil {
		return Order{}, false, fmt.Errorf("encode products: %w", err)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}

	err = postgres.InTx(ctx, r.DB, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `
			INSERT INTO orders(user_id, products_json, total_price, payment_method, status, idempotency_key)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			ON CONFLICT (user_id, idempotency_key) DO NOTHING
			RETURNING id, status, created_at`,
			o.UserID, string(products), o.TotalPrice, string(o.PaymentMethod), string(o.Status), o.IdempotencyKey,
		).Scan(&o.ID, &status, &o.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) && o.IdempotencyKey != "" {
			// key already used: hand back the original
			key := o.IdempotencyKey
			o, err = scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+`
			                                     FROM orders WHERE user_id=$1 AND idempotency_key=$2`, o.UserID, key))
			o.IdempotencyKey = key
			existed = err == nil
			return err
		}
		o.Status = Status(status)
		return err
	})
	if err != nil {
		return Order{}, false, err
	}
	return o, existed, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+`
	                              FROM orders WHERE user_id=$1
	                              ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByUser filters on both id and owner, so a foreign order is
// indistinguishable from a missing one.
func (r *Repo) GetByUser(ctx context.Context, id, userID int64) (Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 AND user_id=$2`, id, userID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, domain.NotFound("Order not found")
	}
	return o, err
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o        Order
		products string
		method   string
		status   string
	)
	if err := row.Scan(&o.ID, &o.UserID, &products, &o.TotalPrice, &method, &status, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	if products != "" {
		if err := json.Unmarshal([]byte(products), &o.Products); err != nil {
			return Order{}, fmt.Errorf("decode products of order %d: %w", o.ID, err)
		}
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	o.Status = Status(status)
	return o, nil
}
