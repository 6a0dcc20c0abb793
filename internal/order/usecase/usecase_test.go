package usecase

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/database"
	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/order"
	"github.com/sideorder/sideorder/internal/order/dto"
	"github.com/sideorder/sideorder/internal/order/repository"
)

func newTestUseCase(t *testing.T) order.UseCase {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Initialize(db, zap.NewNop()))

	return NewOrderUseCase(repository.NewSQLiteRepository(db), zap.NewNop())
}

func TestAddOrderStampsIDAndTimestamp(t *testing.T) {
	uc := newTestUseCase(t)

	o, err := uc.AddOrder(context.Background(), &dto.CreateOrderInput{
		SessionID:    "session-1",
		ItemName:     "Latte",
		ItemCategory: "Espresso",
		Customizations: model.NewGroupedCustomizations(map[string][]string{
			"group-size": {"Large (16oz)"},
		}),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.NotZero(t, o.Timestamp)
	assert.Equal(t, "session-1", o.SessionID)
	assert.True(t, o.Customizations.Grouped())
}

func TestAddOrderDefaultsCustomizations(t *testing.T) {
	uc := newTestUseCase(t)

	o, err := uc.AddOrder(context.Background(), &dto.CreateOrderInput{
		SessionID: "session-1",
		ItemName:  "Espresso",
	})
	require.NoError(t, err)

	require.NotNil(t, o.Customizations)
	assert.Empty(t, o.Customizations)
	assert.True(t, o.Customizations.Grouped())
}

func TestLoadOrdersForSessionInChronologicalOrder(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	names := []string{"Latte", "Americano", "Mocha"}
	for _, name := range names {
		_, err := uc.AddOrder(ctx, &dto.CreateOrderInput{SessionID: "session-1", ItemName: name})
		require.NoError(t, err)
	}
	_, err := uc.AddOrder(ctx, &dto.CreateOrderInput{SessionID: "session-2", ItemName: "Hot Tea"})
	require.NoError(t, err)

	orders, err := uc.LoadOrdersForSession(ctx, "session-1")
	require.NoError(t, err)

	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.LessOrEqual(t, orders[i-1].Timestamp, orders[i].Timestamp)
	}

	n, err := uc.CountForSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpdateOrderTouchesOnlyEditableFields(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	o, err := uc.AddOrder(ctx, &dto.CreateOrderInput{
		SessionID: "session-1",
		ItemName:  "Latte",
		Notes:     "extra hot",
	})
	require.NoError(t, err)

	newCustom := model.NewGroupedCustomizations(map[string][]string{
		"group-milk": {"Oat"},
	})
	notes := "not too hot after all"
	updated, err := uc.UpdateOrder(ctx, o.ID, &dto.UpdateOrderInput{
		Customizations: &newCustom,
		Notes:          &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, o.ID, updated.ID)
	assert.Equal(t, o.SessionID, updated.SessionID)
	assert.Equal(t, o.Timestamp, updated.Timestamp)
	assert.Equal(t, o.ItemName, updated.ItemName)
	assert.Equal(t, "not too hot after all", updated.Notes)
	assert.Equal(t, map[string][]string{"group-milk": {"Oat"}}, updated.Customizations.Selections())
}

func TestUpdateOrderNotFound(t *testing.T) {
	uc := newTestUseCase(t)

	notes := "x"
	_, err := uc.UpdateOrder(context.Background(), "missing", &dto.UpdateOrderInput{Notes: &notes})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	o, err := uc.AddOrder(ctx, &dto.CreateOrderInput{SessionID: "session-1", ItemName: "Latte"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteOrder(ctx, o.ID))
	assert.ErrorIs(t, uc.DeleteOrder(ctx, o.ID), model.ErrNotFound)

	n, err := uc.CountForSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Legacy rows written before grouped customizations must load and classify
// correctly without any rewrite.
func TestLegacyCustomizationsSurviveRoundTrip(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	legacy := model.NewLegacyCustomizations(map[string]string{
		"temperature": "Hot",
		"milk":        "Oat",
	})
	o, err := uc.AddOrder(ctx, &dto.CreateOrderInput{
		SessionID:      "session-1",
		ItemName:       "Latte",
		Customizations: legacy,
	})
	require.NoError(t, err)

	orders, err := uc.LoadOrdersForSession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	loaded := orders[0].Customizations
	assert.Equal(t, o.ID, orders[0].ID)
	assert.False(t, loaded.Grouped())
	assert.Equal(t, map[string]string{"temperature": "Hot", "milk": "Oat"}, loaded.LegacyFields())
}
