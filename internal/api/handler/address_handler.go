package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomstore/commerce-api/internal/api/middleware"
	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
)

// AddressHandler manages the authenticated user's shipping addresses.
type AddressHandler struct {
	addresses ports.AddressRepository
}

func NewAddressHandler(addresses ports.AddressRepository) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

type createAddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Country string `json:"country" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

// ListAddresses returns the authenticated user's addresses.
//
// @Summary      List my addresses
// @Tags         addresses
// @Produce      json
// @Success      200  {array}   domain.Address
// @Failure      401  {object}  map[string]string
// @Router       /api/addresses [get]
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	addresses, err := h.addresses.FindByUsername(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return c.JSON(http.StatusOK, addresses)
}

// CreateAddress stores a new shipping address for the authenticated user.
//
// @Summary      Create an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        body  body      createAddressRequest  true  "Address details"
// @Success      201   {object}  domain.Address
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/addresses [post]
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	var req createAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	address, err := h.addresses.Save(c.Request().Context(), &domain.Address{
		Username: identity.Username,
		Street:   req.Street,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		ZipCode:  req.ZipCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, address)
}
