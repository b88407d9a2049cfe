package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hermione06/cafeteria-management-system/config"
	"github.com/hermione06/cafeteria-management-system/middleware"
	"github.com/hermione06/cafeteria-management-system/models"
	"github.com/hermione06/cafeteria-management-system/orderengine"
	"github.com/hermione06/cafeteria-management-system/pagination"
	"github.com/hermione06/cafeteria-management-system/statemachine"

	"github.com/gin-gonic/gin"
)

func engine() *orderengine.Service {
	return orderengine.NewService(config.DB)
}

// orderErrorStatus maps engine errors onto the HTTP error taxonomy
func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, orderengine.ErrEmptyOrder),
		errors.Is(err, orderengine.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, orderengine.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, orderengine.ErrItemNotFound),
		errors.Is(err, orderengine.ErrOrderNotFound),
		errors.Is(err, orderengine.ErrOrderItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, orderengine.ErrItemUnavailable),
		errors.Is(err, orderengine.ErrOrderLocked),
		errors.Is(err, orderengine.ErrOrderCancelled),
		errors.Is(err, orderengine.ErrInvalidTransition),
		errors.Is(err, orderengine.ErrConcurrentUpdate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortOrderError(c *gin.Context, err error) {
	status := orderErrorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

type PlaceOrderRequest struct {
	Items []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

// PlaceOrder creates a new pending order from the client's cart
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]orderengine.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, orderengine.OrderLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	order, err := engine().CreateOrder(userID, lines, req.SpecialInstructions)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully",
		"order_id": order.ID,
		"order":    order,
	})
}

// ListOrders returns the caller's orders; staff and admin see all and may
// filter by user
func ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	elevated := middleware.IsElevated(c)

	query := config.DB.Model(&models.Order{}).Preload("Items")
	if elevated {
		query = query.Preload("User")
		if filterUser := c.Query("user_id"); filterUser != "" {
			query = query.Where("user_id = ?", filterUser)
		}
	} else {
		query = query.Where("user_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.OrderStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if isPaid := c.Query("is_paid"); isPaid != "" {
		query = query.Where("is_paid = ?", isPaid == "true")
	}
	query = query.Order("created_at desc")

	page, perPage := pagination.Params(c)
	var orders []models.Order
	meta, err := pagination.Apply(query, &orders, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "pagination": meta})
}

// GetOrder returns one order — owner, staff, or admin
func GetOrder(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := engine().GetOrder(orderID)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	if !middleware.IsElevated(c) && order.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status     models.OrderStatus `json:"status" binding:"required"`
	AdminNotes string             `json:"admin_notes"`
}

// UpdateOrderStatus transitions an order — staff or admin only
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := statemachine.ActorFor(middleware.GetRole(c), middleware.GetUserID(c), 0)
	order, err := engine().UpdateStatus(orderID, req.Status, actor, req.AdminNotes)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated to " + string(order.Status),
		"order":   order,
	})
}

// CancelOrder lets the owner cancel their own pending order
func CancelOrder(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	order, err := engine().GetOrder(orderID)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	actor := statemachine.ActorFor(middleware.GetRole(c), userID, order.UserID)
	if actor == statemachine.Actor("none") {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	order, err = engine().UpdateStatus(orderID, models.StatusCancelled, actor, "")
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

type PaymentRequest struct {
	IsPaid        *bool  `json:"is_paid" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// UpdatePayment flips the manual payment flag — staff or admin only
func UpdatePayment(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_paid is required"})
		return
	}

	order, err := engine().SetPayment(orderID, *req.IsPaid, req.PaymentMethod)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	paymentStatus := "unpaid"
	if order.IsPaid {
		paymentStatus = "paid"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order marked as " + paymentStatus, "order": order})
}

type AddOrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// AddOrderItem adds a line item to a still-pending order — owner only
func AddOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := engine().AddItem(orderID, middleware.GetUserID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to order", "order": order})
}

// RemoveOrderItem removes a line item from a still-pending order — owner only
func RemoveOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	order, err := engine().RemoveItem(orderID, middleware.GetUserID(c), itemID)
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from order", "order": order})
}

// DeleteOrder removes an order — owner (pending only) or admin (any)
func DeleteOrder(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := engine().DeleteOrder(orderID, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		abortOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
