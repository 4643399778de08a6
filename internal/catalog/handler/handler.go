package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/httputil"
)

const defaultPageSize = 20

type CatalogHandler struct {
	uc     catalog.UseCase
	logger *zap.Logger
}

func NewCatalogHandler(uc catalog.UseCase, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

// ListPublicProducts serves the plain visible-product list for a store.
func (h *CatalogHandler) ListPublicProducts(c echo.Context) error {
	products, err := h.uc.ListAvailableProducts(c.Request().Context(), c.Param("orgId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, products)
}

// ListPublicProductsPaged serves one cursor page of visible products joined
// with live stock counts.
func (h *CatalogHandler) ListPublicProductsPaged(c echo.Context) error {
	pageSize := defaultPageSize
	if raw := c.QueryParam("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	page, err := h.uc.ListAvailableProductsPaged(c.Request().Context(), &dto.ListAvailableInput{
		OrganizationID: c.Param("orgId"),
		CategoryID:     c.QueryParam("categoryId"),
		PageSize:       pageSize,
		Cursor:         c.QueryParam("cursor"),
	})
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) GetPublicProductDetail(c echo.Context) error {
	detail, err := h.uc.GetPublicProductDetail(c.Request().Context(), c.Param("orgId"), c.Param("productId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) SearchPublicProducts(c echo.Context) error {
	query := c.QueryParam("q")
	if strings.TrimSpace(query) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter q is required"})
	}
	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
	}

	products, err := h.uc.SearchProducts(c.Request().Context(), c.Param("orgId"), query, size)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, products)
}

// ListAdminProducts returns every product for the caller's org, hidden ones
// included.
func (h *CatalogHandler) ListAdminProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context(), auth.OrgID(c))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) EnrichProduct(c echo.Context) error {
	var input dto.EnrichProductInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed enrichment request"})
	}

	product, err := h.uc.EnrichProduct(c.Request().Context(), auth.OrgID(c), c.Param("productId"), &input)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), auth.OrgID(c), c.Param("productId")); err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleStockUpdate is the internal HTTP ingestion path for stock-change
// events; the Kafka listener feeds the same use case.
func (h *CatalogHandler) HandleStockUpdate(c echo.Context) error {
	var event dto.StockEventInput
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed stock event"})
	}

	if _, err := h.uc.ApplyStockEvent(c.Request().Context(), &event); err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *CatalogHandler) GetProductDetails(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("orgId"), c.Param("productId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetProductsByIDs(c echo.Context) error {
	raw := c.QueryParam("productIds")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "productIds query parameter is required"})
	}

	products, err := h.uc.GetProductsByIDs(c.Request().Context(), c.Param("orgId"), strings.Split(raw, ","))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, products)
}
