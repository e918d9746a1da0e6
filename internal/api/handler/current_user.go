package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	mw "github.com/smallerp/erp-gateway/internal/api/middleware"
	"github.com/smallerp/erp-gateway/internal/api/session"
	"github.com/smallerp/erp-gateway/internal/core/domain"
	"github.com/smallerp/erp-gateway/internal/core/ports"
)

// ctxUser caches the fetched user record for the remainder of the request.
const ctxUser = "auth_user"

// CurrentUser turns the request's verified credential into a full user
// record and simple capability checks. Claims and the fetched record are
// memoized on the request context, so repeated calls inside one request do
// not re-verify the token or re-query the store.
type CurrentUser struct {
	tokens  ports.TokenService
	users   ports.UserRepository
	cookies *session.Cookies
}

func NewCurrentUser(tokens ports.TokenService, users ports.UserRepository, cookies *session.Cookies) *CurrentUser {
	return &CurrentUser{tokens: tokens, users: users, cookies: cookies}
}

// claims returns the verified credential payload, preferring the copy the
// guard already stashed on the context. The direct cookie path is a
// defensive fallback for code reached outside the guard.
func (cu *CurrentUser) claims(c echo.Context) (*domain.TokenClaims, error) {
	if claims, ok := c.Get(mw.CtxClaims).(*domain.TokenClaims); ok && claims != nil {
		return claims, nil
	}

	raw, ok := cu.cookies.Read(c)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	claims, err := cu.tokens.Verify(raw)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	c.Set(mw.CtxClaims, claims)
	return claims, nil
}

// Get fetches the authenticated user's record, fresh from the store the
// first time within a request. It never returns a partial record: either a
// complete user or an error.
func (cu *CurrentUser) Get(c echo.Context) (*domain.User, error) {
	if user, ok := c.Get(ctxUser).(*domain.User); ok && user != nil {
		return user, nil
	}

	claims, err := cu.claims(c)
	if err != nil {
		return nil, err
	}

	user, err := cu.users.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token outlived the account; the credential is valid but its
			// subject is gone.
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	c.Set(ctxUser, user)
	return user, nil
}

// ID returns the authenticated user's id from the credential alone, without
// a store lookup. Suited to write paths that only need an attributable actor.
func (cu *CurrentUser) ID(c echo.Context) (string, error) {
	claims, err := cu.claims(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// IsAdmin reports whether the authenticated user holds the admin tier,
// judged against the fresh store record rather than the token's role copy.
func (cu *CurrentUser) IsAdmin(c echo.Context) (bool, error) {
	user, err := cu.Get(c)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// HasPrivateDataAccess reports whether financial fields (sale prices,
// purchase totals) may be shown to the authenticated user.
func (cu *CurrentUser) HasPrivateDataAccess(c echo.Context) (bool, error) {
	user, err := cu.Get(c)
	if err != nil {
		return false, err
	}
	return user.HasPrivateDataAccess(), nil
}
