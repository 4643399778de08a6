package httputil

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperr"
)

// RespondError maps a use-case error onto its stable status code and an
// externally safe message. Internal failures are logged with the full chain
// but never leaked.
func RespondError(c echo.Context, log *zap.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err))
	} else {
		log.Warn("request rejected",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.String("reason", apperr.PublicMessage(err)))
	}
	return c.JSON(status, echo.Map{"error": apperr.PublicMessage(err)})
}
