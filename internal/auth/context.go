package auth

import "github.com/labstack/echo/v4"

const (
	OrgIDKey    = "org_id"
	BranchIDKey = "branch_id"
	UserIDKey   = "user_id"
	RoleKey     = "user_role"
)

// OrgID returns the organization claim the auth middleware stored on the
// request, or "" when the request is unauthenticated.
func OrgID(c echo.Context) string {
	if v, ok := c.Get(OrgIDKey).(string); ok {
		return v
	}
	return ""
}

func BranchID(c echo.Context) string {
	if v, ok := c.Get(BranchIDKey).(string); ok {
		return v
	}
	return ""
}
