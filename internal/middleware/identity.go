package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// requesterID identifies the caller for rate limiting: the admin subject
// when the JWT gate is on, the session id otherwise.
func requesterID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s := fmt.Sprint(v); s != "" {
			return "user:" + s
		}
	}
	if s := SessionID(c); s != "" {
		return "session:" + s
	}
	return "anon"
}
