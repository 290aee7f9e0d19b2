package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and access level claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  This middleware should wrap protected routes so that handlers
// can access authenticated identity via `c.Get("account_id")` and
// `c.Get("access_level")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token using the HS256 signing method and our
            // secret.  The callback ensures the algorithm matches what we
            // issue; tokens signed any other way are rejected.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Store the subject (account ID) and access level in the
            // context for handlers and downstream middleware.  Type
            // assertions are left to consumers.
            c.Set("account_id", claims["sub"])
            c.Set("access_level", claims["access_level"])
            return next(c)
        }
    }
}

// JWTAuthOptional behaves like JWTAuth but lets requests without a valid
// bearer token through with no identity in the context.  Logout uses it:
// a refresh token in the body is enough to end one session, while a
// bearer token ends all of them.
func JWTAuthOptional(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimPrefix(auth, "Bearer ")
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err == nil && tok.Valid {
                if claims, ok := tok.Claims.(jwt.MapClaims); ok {
                    c.Set("account_id", claims["sub"])
                    c.Set("access_level", claims["access_level"])
                }
            }
            return next(c)
        }
    }
}
