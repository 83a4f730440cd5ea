package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie names the cookie that carries the browser's session id.
const SessionCookie = "tf_session"

const sessionKey = "session_id"

// Session makes sure every request has a session id.  A missing or
// malformed cookie is replaced by a fresh random id.
func Session(ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if parsed, err := uuid.Parse(ck.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(sessionKey, id)
			return next(c)
		}
	}
}

// SessionID returns the id stored by Session, or "" outside of it.
func SessionID(c echo.Context) string {
	if s, ok := c.Get(sessionKey).(string); ok {
		return s
	}
	return ""
}
