package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireAccess returns middleware that allows the request through only
// when the authenticated account's access level matches one of the given
// levels.  It must run after JWTAuth so that "access_level" is present in
// the context.  Requests carrying a different level receive 403.
func RequireAccess(levels ...string) echo.MiddlewareFunc {
    allowed := make(map[string]struct{}, len(levels))
    for _, l := range levels {
        allowed[l] = struct{}{}
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            level, _ := c.Get("access_level").(string)
            if _, ok := allowed[level]; !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient access level"})
            }
            return next(c)
        }
    }
}
