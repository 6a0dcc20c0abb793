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
	"github.com/sideorder/sideorder/internal/menu"
	menudto "github.com/sideorder/sideorder/internal/menu/dto"
	menurepo "github.com/sideorder/sideorder/internal/menu/repository"
	menuuc "github.com/sideorder/sideorder/internal/menu/usecase"
	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/order"
	orderdto "github.com/sideorder/sideorder/internal/order/dto"
	orderrepo "github.com/sideorder/sideorder/internal/order/repository"
	orderuc "github.com/sideorder/sideorder/internal/order/usecase"
	"github.com/sideorder/sideorder/internal/pricing"
	"github.com/sideorder/sideorder/internal/session"
	"github.com/sideorder/sideorder/internal/session/dto"
	"github.com/sideorder/sideorder/internal/session/repository"
)

type fixture struct {
	sessions session.UseCase
	menus    menu.UseCase
	orders   order.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	log := zap.NewNop()
	require.NoError(t, database.Initialize(db, log))

	return &fixture{
		sessions: NewSessionUseCase(repository.NewSQLiteRepository(db), log),
		menus:    menuuc.NewMenuUseCase(menurepo.NewSQLiteRepository(db), log),
		orders:   orderuc.NewOrderUseCase(orderrepo.NewSQLiteRepository(db), log),
	}
}

func (f *fixture) start(t *testing.T, name string) *model.Session {
	t.Helper()

	snapshot, err := f.menus.GetSnapshot(context.Background())
	require.NoError(t, err)
	s, err := f.sessions.StartSession(context.Background(), snapshot, name)
	require.NoError(t, err)
	return s
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestStartSessionFreezesMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.start(t, "Saturday Pop-Up")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, model.SessionStatusActive, s.Status)
	assert.NotZero(t, s.StartedAt)
	assert.Nil(t, s.EndedAt)
	assert.Len(t, s.MenuSnapshot.Items, 9)
	assert.Len(t, s.MenuSnapshot.ModifierGroups, 4)
	assert.Len(t, s.MenuSnapshot.Categories, 4)

	loaded, err := f.sessions.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.MenuSnapshot.Items, 9)
}

func TestSecondActiveSessionRejected(t *testing.T) {
	f := newFixture(t)

	f.start(t, "first")

	snapshot, err := f.menus.GetSnapshot(context.Background())
	require.NoError(t, err)
	_, err = f.sessions.StartSession(context.Background(), snapshot, "second")
	assert.ErrorIs(t, err, model.ErrActiveSessionExists)
}

func TestSessionRestartsAfterEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.start(t, "morning")
	ended, err := f.sessions.EndSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusClosed, ended.Status)
	require.NotNil(t, ended.EndedAt)

	// Ending again is a no-op, not an error.
	again, err := f.sessions.EndSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *ended.EndedAt, *again.EndedAt)

	second := f.start(t, "afternoon")
	active, err := f.sessions.ActiveSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestActiveSessionNilWhenIdle(t *testing.T) {
	f := newFixture(t)

	active, err := f.sessions.ActiveSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestUpdateSessionMergesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.start(t, "market day")

	updated, err := f.sessions.UpdateSession(ctx, s.ID, &dto.UpdateSessionInput{
		Notes:         strPtr("ran out of oat milk"),
		CustomerCount: intPtr(42),
	})
	require.NoError(t, err)

	assert.Equal(t, "market day", updated.Name)
	assert.Equal(t, "ran out of oat milk", updated.Notes)
	require.NotNil(t, updated.CustomerCount)
	assert.Equal(t, 42, *updated.CustomerCount)

	cleared, err := f.sessions.UpdateSession(ctx, s.ID, &dto.UpdateSessionInput{
		ClearCustomerCount: true,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.CustomerCount)
	assert.Equal(t, "ran out of oat milk", cleared.Notes)
}

func TestRefreshActiveSnapshotNoOpWhenIdle(t *testing.T) {
	f := newFixture(t)

	snapshot, err := f.menus.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.NoError(t, f.sessions.RefreshActiveSnapshot(context.Background(), snapshot))
}

func TestDeleteSessionRemovesItsOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.start(t, "to be deleted")
	_, err := f.orders.AddOrder(ctx, &orderdto.CreateOrderInput{
		SessionID: s.ID,
		ItemName:  "Latte",
	})
	require.NoError(t, err)

	require.NoError(t, f.sessions.DeleteSession(ctx, s.ID))

	_, err = f.sessions.GetSession(ctx, s.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, err := f.orders.CountForSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// A menu edit mid-session only reaches the session through an explicit
// refresh, and orders always price against the snapshot the session holds.
func TestMenuEditAndSnapshotRefreshRepricing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.menus.UpdateItem(ctx, "item-latte", &menudto.UpdateMenuItemInput{
		BaseCost: floatPtr(5.00),
	})
	require.NoError(t, err)

	s := f.start(t, "price change day")

	o, err := f.orders.AddOrder(ctx, &orderdto.CreateOrderInput{
		SessionID:      s.ID,
		ItemName:       "Latte",
		Customizations: model.NewGroupedCustomizations(map[string][]string{}),
	})
	require.NoError(t, err)

	price, ok := pricing.PriceOf(o, &s.MenuSnapshot)
	require.True(t, ok)
	assert.Equal(t, 5.00, price)

	// Raise the live price. The session still holds the old snapshot.
	_, err = f.menus.UpdateItem(ctx, "item-latte", &menudto.UpdateMenuItemInput{
		BaseCost: floatPtr(6.00),
	})
	require.NoError(t, err)

	stale, err := f.sessions.GetSession(ctx, s.ID)
	require.NoError(t, err)
	price, ok = pricing.PriceOf(o, &stale.MenuSnapshot)
	require.True(t, ok)
	assert.Equal(t, 5.00, price)

	// An explicit refresh brings the new price in.
	fresh, err := f.menus.GetSnapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, f.sessions.RefreshActiveSnapshot(ctx, fresh))

	refreshed, err := f.sessions.GetSession(ctx, s.ID)
	require.NoError(t, err)
	price, ok = pricing.PriceOf(o, &refreshed.MenuSnapshot)
	require.True(t, ok)
	assert.Equal(t, 6.00, price)
}

// Full service window: price the menu, start a session, take orders in both
// customization formats, close up, and check the books.
func TestFullServiceWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.menus.UpdateItem(ctx, "item-latte", &menudto.UpdateMenuItemInput{
		BaseCost: floatPtr(4.50),
	})
	require.NoError(t, err)
	_, err = f.menus.UpdateItem(ctx, "item-drip", &menudto.UpdateMenuItemInput{
		BaseCost: floatPtr(3.00),
	})
	require.NoError(t, err)

	s := f.start(t, "saturday")
	require.Len(t, s.MenuSnapshot.Items, 9)
	require.Len(t, s.MenuSnapshot.ModifierGroups, 4)
	require.Len(t, s.MenuSnapshot.Categories, 4)

	_, err = f.orders.AddOrder(ctx, &orderdto.CreateOrderInput{
		SessionID: s.ID,
		ItemName:  "Latte",
		Customizations: model.NewGroupedCustomizations(map[string][]string{
			"group-milk": {"Oat"},
		}),
	})
	require.NoError(t, err)
	_, err = f.orders.AddOrder(ctx, &orderdto.CreateOrderInput{
		SessionID: s.ID,
		ItemName:  "Drip Coffee",
		Customizations: model.NewLegacyCustomizations(map[string]string{
			"temperature": "Iced",
		}),
	})
	require.NoError(t, err)
	// Espresso has no base cost configured, so this one prices as unknown.
	_, err = f.orders.AddOrder(ctx, &orderdto.CreateOrderInput{
		SessionID: s.ID,
		ItemName:  "Espresso",
	})
	require.NoError(t, err)

	_, err = f.sessions.EndSession(ctx, s.ID)
	require.NoError(t, err)

	all, err := f.sessions.LoadSessions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.SessionStatusClosed, all[0].Status)

	n, err := f.orders.CountForSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	orders, err := f.orders.LoadOrdersForSession(ctx, s.ID)
	require.NoError(t, err)
	total, ok := pricing.TotalRevenue(orders, &all[0].MenuSnapshot)
	require.True(t, ok)
	assert.Equal(t, 7.50, total)
}

// Closed sessions never see menu edits: their snapshot stays frozen even
// through a refresh aimed at a newer active session.
func TestClosedSessionSnapshotImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.start(t, "week one")
	_, err := f.sessions.EndSession(ctx, first.ID)
	require.NoError(t, err)

	_, err = f.menus.UpdateItem(ctx, "item-matcha", &menudto.UpdateMenuItemInput{
		Available: boolPtr(false),
	})
	require.NoError(t, err)

	second := f.start(t, "week two")
	fresh, err := f.menus.GetSnapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, f.sessions.RefreshActiveSnapshot(ctx, fresh))

	old, err := f.sessions.GetSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, old.MenuSnapshot.Items, 9)

	cur, err := f.sessions.GetSession(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, cur.MenuSnapshot.Items, 8)
}
