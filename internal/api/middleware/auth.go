package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/api/metrics"
	"github.com/eventsapp/events-api/internal/core/ports"
	"github.com/eventsapp/events-api/internal/security"
)

// unauthorizedBody is the fixed envelope returned for every API-chain
// authentication failure. Missing header, malformed prefix, bad signature,
// and expiry are intentionally indistinguishable to the client.
var unauthorizedBody = map[string]string{"error": "Unauthorized: JWT token required"}

// BearerAuth is the API-chain authenticator: it extracts the bearer token,
// validates it, resolves the subject against the credential store, and
// attaches the principal. No session is consulted or created. skipper marks
// the public allowlist (login, registration).
func BearerAuth(tokens *security.TokenService, users ports.UserRepository, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}

			subject, err := tokens.ParseSubject(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}

			user, err := users.FindByLoginName(c.Request().Context(), subject)
			if err != nil {
				// Token subject no longer resolves (account deleted since
				// issuance). Same uniform response.
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				return c.JSON(http.StatusUnauthorized, unauthorizedBody)
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			SetPrincipal(c, Principal{
				UserID:    user.ID,
				LoginName: user.LoginName,
				Roles:     user.Roles,
				Chain:     ChainAPI,
			})
			return next(c)
		}
	}
}

// bearerToken returns the token following an exact "Bearer " prefix, or ""
// when the header is absent or malformed. Anything other than the single
// space form is treated as no token at all.
func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return token
}
