// Package session bridges the token service to the HTTP cookie transport.
// The whole session mechanism is one httpOnly cookie carrying the signed
// credential; there is no server-side session table.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the single cookie the session rides in.
const CookieName = "token"

// Cookies reads and writes the session cookie. Secure is driven by the
// SSL configuration switch.
type Cookies struct {
	secure bool
}

func NewCookies(secure bool) *Cookies {
	return &Cookies{secure: secure}
}

// Read returns the raw credential from the request, unvalidated.
func (s *Cookies) Read(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Write sets the session cookie with an expiry matching the credential TTL.
func (s *Cookies) Write(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie; used at logout.
func (s *Cookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
	})
}
