package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CSRFField is the form field every admin form posts its token in.
const CSRFField = "_csrf"

// CSRF issues a per-browser token cookie on safe requests and rejects
// unsafe ones whose form token does not match it.  The token is stored in
// the context under "csrf" for the templates.
func CSRF() echo.MiddlewareFunc {
	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:" + CSRFField,
		CookieName:     CSRFField,
		CookiePath:     "/admin",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteStrictMode,
	})
}
