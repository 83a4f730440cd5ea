package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminTokenCookie may carry the admin access token for browser sessions.
const AdminTokenCookie = "admin_token"

// JWTAuth validates an HS256 access token taken from the Authorization
// header or the admin_token cookie and stores its sub and role claims in
// the context as "user_id" and "role".
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return c.String(http.StatusUnauthorized, "missing access token")
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.String(http.StatusUnauthorized, "invalid access token")
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.String(http.StatusUnauthorized, "invalid access token")
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if ck, err := c.Cookie(AdminTokenCookie); err == nil {
		return ck.Value
	}
	return ""
}
