package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TestHandler serves the role-demonstration endpoints under /api/test. The
// paths are public at the policy stage; the user/seller/admin variants are
// role-gated per route with middleware.RequireRoles.
type TestHandler struct{}

func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

func (h *TestHandler) All(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Public content."})
}

func (h *TestHandler) User(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "User content."})
}

func (h *TestHandler) Seller(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Seller content."})
}

func (h *TestHandler) Admin(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Admin content."})
}
