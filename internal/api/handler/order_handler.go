package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/api/middleware"
	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// OrderHandler exposes read access to the caller's orders. Admins may read
// any order.
type OrderHandler struct {
	orders ports.OrderRepository
}

func NewOrderHandler(orders ports.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListOrders returns the authenticated user's orders.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	orders, err := h.orders.FindByUsername(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order. Non-admin callers may only read their own.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	order, err := h.orders.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if order.Username != identity.Username && !identity.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, order)
}
