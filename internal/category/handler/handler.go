package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/category"
	"github.com/fekuna/omnipos-storefront-service/internal/category/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/httputil"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var input dto.CategoryInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed category request"})
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), auth.OrgID(c), &input)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var input dto.CategoryInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed category request"})
	}

	cat, err := h.uc.UpdateCategory(c.Request().Context(), auth.OrgID(c), c.Param("categoryId"), &input)
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context(), auth.OrgID(c))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// ListPublicCategories serves the storefront navigation tree; the org comes
// from the path, not from a token.
func (h *CategoryHandler) ListPublicCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context(), c.Param("orgId"))
	if err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.uc.DeleteCategory(c.Request().Context(), auth.OrgID(c), c.Param("categoryId")); err != nil {
		return httputil.RespondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
