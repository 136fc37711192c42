package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, 30*time.Minute), mr
}

func TestGet_UnknownIDReturnsFreshSession(t *testing.T) {
	store, mr := setupTestRedis(t)

	s, err := store.Get(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, domain.CheckoutStateBuilding, s.State)
	assert.True(t, s.Cart.IsEmpty())
	assert.False(t, mr.Exists(sessionKey("abc")))
}

func TestGet_EmptyID(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSaveGet_RoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	s := domain.NewSession("abc", time.Now())
	s.Cart.Add(domain.Product{ID: "p1", Name: "Bujía", Price: decimal.RequireFromString("1250.50")}, time.Now())
	s.PostalCode = "3600"
	s.Options = []domain.ShippingOption{{ID: domain.ShippingLocalPickup, Label: "Retirar por local", Price: decimal.Zero}}
	s.Cart.Shipping = &s.Options[0]
	s.State = domain.CheckoutStateShippingSelected

	require.NoError(t, store.Save(ctx, s))
	got, err := store.Get(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateShippingSelected, got.State)
	assert.Equal(t, "3600", got.PostalCode)
	require.Len(t, got.Cart.Lines, 1)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(got.Cart.Lines[0].UnitPrice))
	require.NotNil(t, got.Cart.Shipping)
	assert.Equal(t, domain.ShippingLocalPickup, got.Cart.Shipping.ID)
}

func TestSave_Invalid(t *testing.T) {
	store, _ := setupTestRedis(t)

	assert.ErrorIs(t, store.Save(context.Background(), nil), ErrInvalidID)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.Session{}), ErrInvalidID)
}

func TestGet_SlidesExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewSession("abc", time.Now())))

	mr.FastForward(20 * time.Minute)
	_, err := store.Get(ctx, "abc")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, mr.TTL(sessionKey("abc")))
}

func TestSession_Expires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	s := domain.NewSession("abc", time.Now())
	s.Cart.Add(domain.Product{ID: "p1"}, time.Now())
	require.NoError(t, store.Save(ctx, s))

	mr.FastForward(31 * time.Minute)
	got, err := store.Get(ctx, "abc")

	require.NoError(t, err)
	assert.True(t, got.Cart.IsEmpty())
}

func TestDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.NewSession("abc", time.Now())))

	require.NoError(t, store.Delete(ctx, "abc"))

	assert.False(t, mr.Exists(sessionKey("abc")))
}

func TestGet_InvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(sessionKey("abc"), "nope"))

	_, err := store.Get(context.Background(), "abc")

	assert.ErrorContains(t, err, "unmarshal session failed")
}
