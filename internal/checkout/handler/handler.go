package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/httputil"
)

type CheckoutHandler struct {
	uc     checkout.UseCase
	logger *zap.Logger
}

func NewCheckoutHandler(uc checkout.UseCase, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: log}
}

// InitiateCheckout converts a cart into a pending order. A 409 means the
// inventory service rejected the sale; the body is its error verbatim.
func (h *CheckoutHandler) InitiateCheckout(c echo.Context) error {
	var input dto.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed checkout request"})
	}

	order, err := h.uc.InitiateCheckout(c.Request().Context(), c.Param("orgId"), &input)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHandler) CreatePaymentOrder(c echo.Context) error {
	resp, err := h.uc.CreatePaymentOrder(c.Request().Context(), c.Param("orgId"), c.Param("orderId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetOrderDetails serves the internal fulfillment view, package profile
// included.
func (h *CheckoutHandler) GetOrderDetails(c echo.Context) error {
	details, err := h.uc.GetOrderDetails(c.Request().Context(), c.Param("orgId"), c.Param("orderId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, details)
}
