package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/core/domain"
)

// Session value keys written by the login handler and read back here.
const (
	SessionLoginKey  = "login"
	SessionUserIDKey = "user_id"
	SessionRolesKey  = "roles"
)

// LoginFormPath is where unauthenticated browser requests are redirected.
const LoginFormPath = "/users/loginForm"

type access int

const (
	accessPublic access = iota
	accessAuthenticated
	accessAdmin
)

// Rule pairs a path predicate with the access it requires. Rules are
// evaluated top to bottom; the first match wins and there is no fallthrough.
type Rule struct {
	Match  func(method, path string) bool
	Access access
}

func prefixRule(prefix string, a access) Rule {
	return Rule{Match: func(_, path string) bool { return strings.HasPrefix(path, prefix) }, Access: a}
}

func exactRule(path string, a access) Rule {
	return Rule{Match: func(_, p string) bool { return p == path }, Access: a}
}

// SessionPolicy is the ordered route policy for the browser chain: public
// pages first, then the ADMIN-gated event mutations, then a catch-all that
// demands an authenticated session.
func SessionPolicy() []Rule {
	return []Rule{
		exactRule("/", accessPublic),
		prefixRule("/css/", accessPublic),
		prefixRule("/js/", accessPublic),
		exactRule("/events", accessPublic),
		exactRule("/events/search", accessPublic),
		exactRule(LoginFormPath, accessPublic),
		exactRule("/users/register", accessPublic),
		exactRule("/login", accessPublic),
		exactRule("/health", accessPublic),
		prefixRule("/health/", accessPublic),
		exactRule("/metrics", accessPublic),
		exactRule("/events/create", accessAdmin),
		prefixRule("/events/edit/", accessAdmin),
		prefixRule("/events/delete/", accessAdmin),
		{Match: func(_, _ string) bool { return true }, Access: accessAuthenticated},
	}
}

// SessionChain authorizes browser requests. It resolves the principal from
// the server-side session (created on demand, never here) and applies the
// rule table. Outcomes are distinct: an unauthenticated request is redirected
// to the login form, while an authenticated one lacking the required role
// gets a 403.
func SessionChain(cookieName string, rules []Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, authenticated := sessionPrincipal(c, cookieName)
			if authenticated {
				SetPrincipal(c, principal)
			}

			req := c.Request()
			for _, rule := range rules {
				if !rule.Match(req.Method, req.URL.Path) {
					continue
				}
				switch rule.Access {
				case accessPublic:
					return next(c)
				case accessAuthenticated:
					if !authenticated {
						return c.Redirect(http.StatusFound, LoginFormPath)
					}
					return next(c)
				case accessAdmin:
					if !authenticated {
						return c.Redirect(http.StatusFound, LoginFormPath)
					}
					if !principal.HasRole(domain.RoleAdmin) {
						return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
					}
					return next(c)
				}
			}
			// The catch-all rule makes this unreachable for the default
			// policy; fail closed for custom rule sets.
			return c.Redirect(http.StatusFound, LoginFormPath)
		}
	}
}

// sessionPrincipal rebuilds the principal from the session values stored at
// login. Roles round-trip through JSON, so they come back as []any.
func sessionPrincipal(c echo.Context, cookieName string) (Principal, bool) {
	sess, err := session.Get(cookieName, c)
	if err != nil || sess.IsNew {
		return Principal{}, false
	}

	login, _ := sess.Values[SessionLoginKey].(string)
	if login == "" {
		return Principal{}, false
	}

	p := Principal{LoginName: login, Chain: ChainSession}
	switch id := sess.Values[SessionUserIDKey].(type) {
	case int64:
		p.UserID = id
	case float64:
		p.UserID = int64(id)
	}

	switch stored := sess.Values[SessionRolesKey].(type) {
	case []string:
		for _, label := range stored {
			if role, err := domain.ParseRole(label); err == nil {
				p.Roles = append(p.Roles, role)
			}
		}
	case []any:
		for _, v := range stored {
			label, ok := v.(string)
			if !ok {
				continue
			}
			if role, err := domain.ParseRole(label); err == nil {
				p.Roles = append(p.Roles, role)
			}
		}
	}

	return p, true
}
