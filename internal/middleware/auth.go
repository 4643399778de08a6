package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
)

type claims struct {
	OrgID    string `json:"org_id"`
	BranchID string `json:"branch_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token and stores the tenant claims on the
// request. Admin and internal routes require an org claim; authorization
// policy beyond that lives upstream.
func Auth(secret string, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("missing authorization header", zap.String("path", c.Path()))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			token, err := jwt.ParseWithClaims(parts[1], &claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			cl, ok := token.Claims.(*claims)
			if !ok || cl.OrgID == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "org_id is required in the token"})
			}

			c.Set(auth.OrgIDKey, cl.OrgID)
			c.Set(auth.BranchIDKey, cl.BranchID)
			c.Set(auth.UserIDKey, cl.UserID)
			c.Set(auth.RoleKey, cl.Role)

			return next(c)
		}
	}
}
