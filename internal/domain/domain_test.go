package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range PaymentMethods() {
		assert.True(t, m.Valid(), m)
		assert.NoError(t, ValidatePaymentMethod(m))
	}
	for _, m := range []PaymentMethod{"", "paypal", "Cash_On_Delivery", "cash_on_delivery "} {
		err := ValidatePaymentMethod(m)
		require.Error(t, err, m)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Equal(t, "Invalid payment method", err.Error())
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-01T10:00:00Z", want},
		{"2024-06-01T10:00:00+00:00", want},
		{"2024-06-01T13:00:00+03:00", want},
		{"2024-06-01T10:00:00", want},
		{"2024-06-01T10:00", want},
		{"2024-06-01 10:00:00", want},
		{"2024-06-01T10:00:00.250Z", want.Add(250 * time.Millisecond)},
		{"2024-06-01T10:00:00.5", want.Add(500 * time.Millisecond)},
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := ParseTimestamp(c.in)
		require.NoError(t, err, c.in)
		assert.True(t, c.want.Equal(got), "%s: got %s", c.in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, in := range []string{"", "tomorrow", "2024-13-01T10:00:00Z", "01/06/2024 10:00"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Nil(t, FormatTimestamp(time.Time{}))

	loc := time.FixedZone("damascus", 3*60*60)
	s := FormatTimestamp(time.Date(2024, 6, 1, 13, 0, 0, 0, loc))
	require.NotNil(t, s)
	assert.Equal(t, "2024-06-01T10:00:00Z", *s)
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("load order: %w", NotFound("Order not found"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, "Authentication required", ErrUnauthenticated.Error())
}

func TestIdentity(t *testing.T) {
	assert.ErrorIs(t, Identity{}.Require(), ErrUnauthenticated)
	assert.NoError(t, Identity{UserID: 7}.Require())

	ctx := WithIdentity(context.Background(), Identity{UserID: 7})
	assert.Equal(t, int64(7), IdentityFrom(ctx).UserID)
	assert.False(t, IdentityFrom(context.Background()).Authenticated())
}
