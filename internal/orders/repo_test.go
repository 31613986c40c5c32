package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/queencare-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "user_id", "products_json", "total_price", "payment_method", "status", "created_at"}

func TestRepoCreateCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), `[{"name":"Shampoo"}]`, 35000.0, "syriatel_cash", "pending", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "created_at"}).AddRow(int64(10), "pending", now))
	mock.ExpectCommit()

	repo := &Repo{DB: mock}
	o, existed, err := repo.Create(context.Background(), Order{
		UserID:        1,
		Products:      []json.RawMessage{json.RawMessage(`{"name":"Shampoo"}`)},
		TotalPrice:    35000,
		PaymentMethod: domain.PaymentSyriatelCash,
	})
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, int64(10), o.ID)
	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, now.Equal(o.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoCreateRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("insert or update on table \"orders\" violates foreign key constraint")
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnError(boom)
	mock.ExpectRollback()

	repo := &Repo{DB: mock}
	_, _, err = repo.Create(context.Background(), Order{
		UserID:        99,
		Products:      []json.RawMessage{json.RawMessage(`{}`)},
		TotalPrice:    1,
		PaymentMethod: domain.PaymentCashOnDelivery,
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoCreateReturnsOrderForUsedKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	placed := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), `[{"name":"Shampoo"}]`, 35000.0, "syriatel_cash", "pending", "cart-42").
		WillReturnError(pgx.ErrNoRows) // ON CONFLICT DO NOTHING returned nothing
	mock.ExpectQuery("FROM orders WHERE user_id=\\$1 AND idempotency_key").
		WithArgs(int64(1), "cart-42").
		WillReturnRows(pgxmock.NewRows(orderCols).
			AddRow(int64(7), int64(1), `[{"name":"Shampoo"}]`, 35000.0, "syriatel_cash", "pending", placed))
	mock.ExpectCommit()

	o, existed, err := (&Repo{DB: mock}).Create(context.Background(), Order{
		UserID:         1,
		Products:       []json.RawMessage{json.RawMessage(`{"name":"Shampoo"}`)},
		TotalPrice:     35000,
		PaymentMethod:  domain.PaymentSyriatelCash,
		IdempotencyKey: "cart-42",
	})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, int64(7), o.ID)
	assert.True(t, placed.Equal(o.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	t1 := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders WHERE user_id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(orderCols).
			AddRow(int64(2), int64(1), `[{"name":"Sunblock"}]`, 50000.0, "cash_on_delivery", "pending", t1).
			AddRow(int64(1), int64(1), `[{"name":"Shampoo"},{"name":"Nail Oil"}]`, 60000.0, "bank_al_baraka", "pending", t0))

	repo := &Repo{DB: mock}
	list, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Len(t, list[1].Products, 2)
	assert.Equal(t, domain.PaymentBankAlBaraka, list[1].PaymentMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoListByUserEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders WHERE user_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(orderCols))

	list, err := (&Repo{DB: mock}).ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRepoGetByUserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM orders WHERE id").
		WithArgs(int64(5), int64(2)).
		WillReturnError(pgx.ErrNoRows)

	_, err = (&Repo{DB: mock}).GetByUser(context.Background(), 5, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Order not found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
