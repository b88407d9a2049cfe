package orderengine

import (
	"time"

	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/shopspring/decimal"
)

// Summary aggregates orders created in [from, to): counts per status and
// revenue over non-cancelled orders.
type Summary struct {
	From           time.Time                    `json:"from"`
	To             time.Time                    `json:"to"`
	TotalOrders    int64                        `json:"total_orders"`
	CountsByStatus map[models.OrderStatus]int64 `json:"counts_by_status"`
	Revenue        decimal.Decimal              `json:"revenue"`
}

// ItemCount ranks one menu item within a reporting window
type ItemCount struct {
	MenuItemID    uint   `json:"menu_item_id"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
	TimesOrdered  int64  `json:"times_ordered"`
}

// Report returns order counts and revenue for the window. Revenue is summed
// in decimal space from stored totals, so it is exactly consistent with what
// the engine froze at order time.
func (s *Service) Report(from, to time.Time) (*Summary, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:           from,
		To:             to,
		CountsByStatus: make(map[models.OrderStatus]int64),
		Revenue:        decimal.Zero,
	}
	for _, r := range rows {
		summary.CountsByStatus[r.Status] = r.Count
		summary.TotalOrders += r.Count
	}

	var totals []decimal.Decimal
	err = s.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Where("status <> ?", models.StatusCancelled).
		Pluck("total_price", &totals).Error
	if err != nil {
		return nil, err
	}
	for _, t := range totals {
		summary.Revenue = summary.Revenue.Add(t)
	}
	return summary, nil
}

// TopItems ranks menu items by total ordered quantity within the window,
// excluding cancelled orders.
func (s *Service) TopItems(from, to time.Time, limit int) ([]ItemCount, error) {
	if limit < 1 {
		limit = 10
	}
	var rows []ItemCount
	err := s.db.Model(&models.OrderItem{}).
		Select("order_items.menu_item_id, order_items.name, SUM(order_items.quantity) AS total_quantity, COUNT(DISTINCT order_items.order_id) AS times_ordered").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ?", models.StatusCancelled).
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("order_items.menu_item_id, order_items.name").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
