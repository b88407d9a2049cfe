// Package orderengine turns carts into persisted orders and governs the
// order lifecycle. All monetary math uses decimals, every mutation runs in
// one transaction, and concurrent updates on one order are serialized with
// an optimistic version check.
package orderengine

import (
	"fmt"
	"time"

	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/statemachine"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the order engine. It holds its database handle explicitly so
// tests can run it against an isolated in-memory store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// OrderLine is one requested cart entry at checkout
type OrderLine struct {
	MenuItemID uint
	Quantity   int
}

// CreateOrder persists a new pending order from the given cart lines.
// Unit prices are frozen from the menu at this instant and the total is
// always recomputed server-side; a client-sent total is never trusted.
// Either the order row and all line items are created, or nothing is.
func (s *Service) CreateOrder(userID uint, lines []OrderLine, instructions string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	// Coalesce duplicate menu items into a single line
	merged := make(map[uint]int)
	var seq []uint
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, ok := merged[l.MenuItemID]; !ok {
			seq = append(seq, l.MenuItemID)
		}
		merged[l.MenuItemID] += l.Quantity
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.OrderItem
		total := decimal.Zero

		for _, id := range seq {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
				}
				return err
			}
			if !menuItem.IsAvailable {
				return fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.Name)
			}
			item := models.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   merged[id],
				UnitPrice:  menuItem.Price,
				Name:       menuItem.Name,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		order = models.Order{
			UserID:              userID,
			Status:              models.StatusPending,
			IsPaid:              false,
			TotalPrice:          total,
			SpecialInstructions: instructions,
			Items:               items,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order through the state machine on behalf of an
// actor. Terminal orders reject every further transition. The row update
// carries a version predicate so that two racing transitions cannot both
// apply; the loser gets ErrConcurrentUpdate.
func (s *Service) UpdateStatus(orderID uint, newStatus models.OrderStatus, actor statemachine.Actor, note string) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
		}
		if err := statemachine.CanTransition(order.Status, newStatus, actor); err != nil {
			// Reachable by some other actor means the caller lacks the role
			for _, next := range statemachine.ValidTransitionsFrom(order.Status) {
				if next == newStatus {
					return fmt.Errorf("%w: %v", ErrForbidden, err)
				}
			}
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		updates := map[string]interface{}{
			"status":  newStatus,
			"version": order.Version + 1,
		}
		if newStatus == models.StatusCompleted {
			now := time.Now().UTC()
			updates["completed_at"] = &now
		}
		if note != "" {
			updates["admin_notes"] = note
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}
		return tx.Preload("Items").First(&order, orderID).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AddItem appends a line item to the caller's own still-pending order,
// freezing the unit price from the menu and recomputing the total. Adding
// a menu item already on the order merges into the existing line.
func (s *Service) AddItem(orderID, callerID, menuItemID uint, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockPendingOwned(tx, &order, orderID, callerID); err != nil {
			return err
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, menuItemID)
			}
			return err
		}
		if !menuItem.IsAvailable {
			return fmt.Errorf("%w: %s", ErrItemUnavailable, menuItem.Name)
		}

		var existing models.OrderItem
		err := tx.Where("order_id = ? AND menu_item_id = ?", order.ID, menuItem.ID).First(&existing).Error
		switch err {
		case nil:
			// Merged quantity keeps the originally frozen unit price
			if err := tx.Model(&existing).Update("quantity", existing.Quantity+quantity).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			item := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   quantity,
				UnitPrice:  menuItem.Price,
				Name:       menuItem.Name,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return refreshTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// RemoveItem deletes a line item from the caller's own still-pending order
// and recomputes the total.
func (s *Service) RemoveItem(orderID, callerID, orderItemID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockPendingOwned(tx, &order, orderID, callerID); err != nil {
			return err
		}

		var item models.OrderItem
		if err := tx.First(&item, orderItemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderItemNotFound
			}
			return err
		}
		if item.OrderID != order.ID {
			return ErrOrderItemNotFound
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		return refreshTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetPayment flips the manual payment flag. Cancelled orders cannot be
// marked paid or unpaid.
func (s *Service) SetPayment(orderID uint, paid bool, method string) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status == models.StatusCancelled {
			return ErrOrderCancelled
		}

		updates := map[string]interface{}{
			"is_paid": paid,
			"version": order.Version + 1,
		}
		if method != "" {
			updates["payment_method"] = method
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}
		return tx.Preload("Items").First(&order, orderID).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order and its line items. Owners may delete their
// own pending orders; admins may delete any order.
func (s *Service) DeleteOrder(orderID, callerID uint, role models.UserRole) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if role != models.RoleAdmin {
			if order.UserID != callerID {
				return ErrForbidden
			}
			if order.Status != models.StatusPending {
				return ErrOrderLocked
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// GetOrder loads one order with its line items
func (s *Service) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.MenuItem").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// lockPendingOwned loads an order and verifies the caller owns it and it is
// still pending. Runs inside the caller's transaction.
func lockPendingOwned(tx *gorm.DB, order *models.Order, orderID, callerID uint) error {
	if err := tx.First(order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrOrderNotFound
		}
		return err
	}
	if order.UserID != callerID {
		return ErrForbidden
	}
	if order.Status != models.StatusPending {
		return ErrOrderLocked
	}
	return nil
}

// refreshTotal recomputes total_price from the surviving line items and
// writes it back with a version bump, failing the racing writer.
func refreshTotal(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"total_price": total,
			"version":     order.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return tx.Preload("Items").First(order, order.ID).Error
}
