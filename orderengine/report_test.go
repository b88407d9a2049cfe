package orderengine

import (
	"testing"
	"time"

	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/statemachine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCountsAndRevenue(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	coffee := seedMenuItem(t, db, "Coffee", "2.50", true)
	cake := seedMenuItem(t, db, "Cake", "4.00", true)

	// Two completed-to-be orders and one cancelled
	o1, err := svc.CreateOrder(1, []OrderLine{{MenuItemID: coffee.ID, Quantity: 2}}, "") // 5.00
	require.NoError(t, err)
	o2, err := svc.CreateOrder(2, []OrderLine{{MenuItemID: cake.ID, Quantity: 1}}, "") // 4.00
	require.NoError(t, err)
	o3, err := svc.CreateOrder(3, []OrderLine{{MenuItemID: cake.ID, Quantity: 5}}, "") // cancelled
	require.NoError(t, err)

	_, err = svc.UpdateStatus(o1.ID, models.StatusCompleted, statemachine.ActorStaff, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o3.ID, models.StatusCancelled, statemachine.ActorStaff, "")
	require.NoError(t, err)
	_ = o2 // stays pending

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)

	summary, err := svc.Report(from, to)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.CountsByStatus[models.StatusCompleted])
	assert.Equal(t, int64(1), summary.CountsByStatus[models.StatusPending])
	assert.Equal(t, int64(1), summary.CountsByStatus[models.StatusCancelled])
	// Cancelled order's 20.00 is excluded
	assert.True(t, decimal.RequireFromString("9.00").Equal(summary.Revenue),
		"expected revenue 9.00, got %s", summary.Revenue)
}

func TestReportEmptyWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	from := time.Now().UTC().Add(-2 * time.Hour)
	to := time.Now().UTC().Add(-time.Hour)

	summary, err := svc.Report(from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalOrders)
	assert.True(t, summary.Revenue.IsZero())
	assert.Empty(t, summary.CountsByStatus)
}

func TestTopItemsRankingExcludesCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	coffee := seedMenuItem(t, db, "Coffee", "2.50", true)
	cake := seedMenuItem(t, db, "Cake", "4.00", true)
	tea := seedMenuItem(t, db, "Tea", "2.00", true)

	_, err := svc.CreateOrder(1, []OrderLine{
		{MenuItemID: coffee.ID, Quantity: 3},
		{MenuItemID: cake.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)
	_, err = svc.CreateOrder(2, []OrderLine{{MenuItemID: coffee.ID, Quantity: 2}}, "")
	require.NoError(t, err)

	// A cancelled order full of tea must not show up
	o3, err := svc.CreateOrder(3, []OrderLine{{MenuItemID: tea.ID, Quantity: 10}}, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o3.ID, models.StatusCancelled, statemachine.ActorStaff, "")
	require.NoError(t, err)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)

	items, err := svc.TopItems(from, to, 10)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, coffee.ID, items[0].MenuItemID)
	assert.Equal(t, int64(5), items[0].TotalQuantity)
	assert.Equal(t, int64(2), items[0].TimesOrdered)
	assert.Equal(t, cake.ID, items[1].MenuItemID)
	assert.Equal(t, int64(1), items[1].TotalQuantity)
}

func TestTopItemsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	coffee := seedMenuItem(t, db, "Coffee", "2.50", true)
	cake := seedMenuItem(t, db, "Cake", "4.00", true)

	_, err := svc.CreateOrder(1, []OrderLine{
		{MenuItemID: coffee.ID, Quantity: 2},
		{MenuItemID: cake.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC().Add(time.Hour)

	items, err := svc.TopItems(from, to, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, coffee.ID, items[0].MenuItemID)
}
