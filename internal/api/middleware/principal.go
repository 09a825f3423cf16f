package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// Chain labels which authentication strategy resolved the principal.
const (
	ChainSession = "session"
	ChainAPI     = "api"
)

const principalKey = "principal"

// Principal is the request-scoped authenticated identity. Authorities are
// derived 1:1 from the user's role set, identically in both chains.
type Principal struct {
	UserID    int64
	LoginName string
	Roles     []domain.Role
	Chain     string
}

// HasRole reports whether the principal was granted the role. No hierarchy:
// ADMIN does not imply USER.
func (p Principal) HasRole(role domain.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SetPrincipal attaches the principal to the echo context for the remainder
// of the request.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom extracts the principal resolved by the authentication
// middleware, if any.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
