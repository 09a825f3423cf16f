package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/api/metrics"
	"github.com/eventsapp/events-api/internal/api/middleware"
	"github.com/eventsapp/events-api/internal/core/domain"
	"github.com/eventsapp/events-api/internal/core/ports"
)

// UsersWebHandler serves the browser chain's user pages: home, login form,
// the credential-processing endpoint, registration, and logout.
type UsersWebHandler struct {
	authService ports.AuthService
	cookieName  string
}

func NewUsersWebHandler(authService ports.AuthService, cookieName string) *UsersWebHandler {
	return &UsersWebHandler{authService: authService, cookieName: cookieName}
}

// Home renders the landing page.
func (h *UsersWebHandler) Home(c echo.Context) error {
	data := map[string]any{}
	if principal, ok := middleware.PrincipalFrom(c); ok {
		data["LoginName"] = principal.LoginName
	}
	return c.Render(http.StatusOK, "home", data)
}

// LoginForm renders the login page. The error indicator arrives as a bare
// query flag; no failure detail is ever carried in the URL.
func (h *UsersWebHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", map[string]any{
		"Error": c.QueryParam("error") != "",
	})
}

// Login is the fixed credential-processing endpoint. Success starts a
// session and redirects to the root; failure redirects back to the form with
// nothing but an error flag.
func (h *UsersWebHandler) Login(c echo.Context) error {
	loginName := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.Request().Context(), loginName, password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			metrics.LoginsTotal.WithLabelValues("session", "bad_credentials").Inc()
			return c.Redirect(http.StatusFound, middleware.LoginFormPath+"?error=true")
		}
		return err
	}

	sess, err := session.Get(h.cookieName, c)
	if err != nil {
		return err
	}
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.String())
	}
	sess.Values[middleware.SessionLoginKey] = user.LoginName
	sess.Values[middleware.SessionUserIDKey] = user.ID
	sess.Values[middleware.SessionRolesKey] = roles
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("session", "ok").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Logout invalidates the session and sends the browser back to the login
// form.
func (h *UsersWebHandler) Logout(c echo.Context) error {
	sess, err := session.Get(h.cookieName, c)
	if err == nil {
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusFound, middleware.LoginFormPath)
}

// RegisterForm renders the registration page.
func (h *UsersWebHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", map[string]any{})
}

// Register creates the account and sends the browser to the login form.
// Duplicates re-render the form instead of writing anything.
func (h *UsersWebHandler) Register(c echo.Context) error {
	loginName := c.FormValue("username")
	password := c.FormValue("password")

	if _, err := h.authService.Register(c.Request().Context(), loginName, password); err != nil {
		msg := "Registration failed."
		if errors.Is(err, domain.ErrUserExists) {
			msg = "User already exists."
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		return c.Render(http.StatusOK, "register", map[string]any{"Error": msg})
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusFound, middleware.LoginFormPath)
}
