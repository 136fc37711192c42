package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nehueninos/nhnproparts/orders-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *Repository {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations",
	}

	repo, err := NewRepository(ctx, creds)
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations(creds))

	t.Cleanup(func() {
		_ = repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return repo
}

func newTestOrder() *domain.Order {
	return &domain.Order{
		ID: uuid.New(),
		Customer: domain.Customer{
			Name:    "Juan Pérez",
			Email:   "juan@example.com",
			Phone:   "3704 123456",
			Address: "Belgrano 123",
		},
		Items: []domain.OrderItem{
			{Name: "Filtro de aceite", Quantity: 2, Price: decimal.NewFromInt(1000)},
		},
		Shipping: domain.Shipping{
			Method:    "Correo Argentino - Retiro por sucursal",
			Price:     decimal.NewFromInt(500),
			Estimated: "3 días hábiles",
		},
		Total:     decimal.NewFromInt(2500),
		Status:    domain.OrderStatusReceived,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	order := newTestOrder()

	require.NoError(t, repo.CreateOrder(ctx, order))

	fetched, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, order.Customer, fetched.Customer)
	assert.Equal(t, order.Shipping.Method, fetched.Shipping.Method)
	assert.Equal(t, order.Shipping.Estimated, fetched.Shipping.Estimated)
	assert.True(t, order.Shipping.Price.Equal(fetched.Shipping.Price))
	assert.True(t, order.Total.Equal(fetched.Total))
	assert.Equal(t, order.Status, fetched.Status)
	assert.True(t, order.CreatedAt.Equal(fetched.CreatedAt))
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Filtro de aceite", fetched.Items[0].Name)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(1000).Equal(fetched.Items[0].Price))
}

func TestCreateOrder_WritesOutboxEvent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	order := newTestOrder()

	require.NoError(t, repo.CreateOrder(ctx, order))

	events, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, order.ID.String(), events[0].AggregateID)
	assert.Equal(t, domain.EventTypeOrderPlaced, events[0].EventType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, order.ID.String(), payload["order_id"])
	assert.Equal(t, "juan@example.com", payload["customer_email"])
}

func TestCreateOrder_Duplicate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	order := newTestOrder()

	require.NoError(t, repo.CreateOrder(ctx, order))
	err := repo.CreateOrder(ctx, order)
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	// the rejected insert must not leave a second event behind
	events, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOutbox_MarkProcessed(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, second := newTestOrder(), newTestOrder()
	require.NoError(t, repo.CreateOrder(ctx, first))
	require.NoError(t, repo.CreateOrder(ctx, second))

	events, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.ID.String(), events[0].AggregateID)

	require.NoError(t, repo.MarkEventAsProcessed(ctx, events[0].ID))
	assert.Error(t, repo.MarkEventAsProcessed(ctx, events[0].ID))

	remaining, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID.String(), remaining[0].AggregateID)
}

func TestGetUnprocessedEvents_Limit(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.CreateOrder(ctx, newTestOrder()))
	}

	events, err := repo.GetUnprocessedEvents(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Less(t, events[0].ID, events[1].ID)
}
