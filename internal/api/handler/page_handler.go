package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/smallerp/erp-gateway/internal/api/middleware"
	"github.com/smallerp/erp-gateway/internal/i18n"
)

// PageHandler renders the gated server-side pages. The markup here is a thin
// shell; real page content comes from the view layer, which is outside this
// service. What matters is which sections each role gets to see.
type PageHandler struct {
	current *CurrentUser
}

func NewPageHandler(current *CurrentUser) *PageHandler {
	return &PageHandler{current: current}
}

func pageLocale(c echo.Context) i18n.Locale {
	if l, ok := c.Get(mw.CtxLocale).(i18n.Locale); ok {
		return l
	}
	return i18n.Resolve(c.Request().URL.Path)
}

// Home renders the locale-prefixed landing page.
func (h *PageHandler) Home(c echo.Context) error {
	user, err := h.current.Get(c)
	if err != nil {
		return err
	}

	locale := pageLocale(c)
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	body := fmt.Sprintf(
		`<main data-locale=%q><h1>%s</h1><nav><a href="/%s/projects">projects</a></nav></main>`,
		locale, html.EscapeString(name), locale,
	)
	return c.HTML(http.StatusOK, body)
}

// Projects renders the project list shell. Sale prices and purchase totals
// are withheld from the lowest tier.
func (h *PageHandler) Projects(c echo.Context) error {
	user, err := h.current.Get(c)
	if err != nil {
		return err
	}

	section := `<section id="projects"></section>`
	if user.HasPrivateDataAccess() {
		section += `<section id="financials"></section>`
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(`<main>%s</main>`, section))
}

// Admin renders the user-administration page. The guard already redirected
// non-admin tokens away; the fresh-record check here catches the case where
// the role was downgraded after the token was issued.
func (h *PageHandler) Admin(c echo.Context) error {
	isAdmin, err := h.current.IsAdmin(c)
	if err != nil {
		return err
	}
	if !isAdmin {
		locale := pageLocale(c)
		return c.Redirect(http.StatusFound, i18n.HomePath(locale))
	}
	return c.HTML(http.StatusOK, `<main><section id="user-admin"></section></main>`)
}

// Login renders the sign-in form. Always reachable without a session.
func (h *PageHandler) Login(c echo.Context) error {
	return c.HTML(http.StatusOK,
		`<main><form method="post" action="/auth/login">`+
			`<input name="username"><input name="password" type="password">`+
			`<button type="submit">Sign in</button></form></main>`)
}
