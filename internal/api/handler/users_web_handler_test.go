package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eventsapp/events-api/internal/api/middleware"
)

const webTestCookie = "EVENTSID"

func newWebApp(svc *stubAuthService) *echo.Echo {
	e := echo.New()
	e.Renderer = NewRenderer()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("web-test-signing-key"))))

	h := NewUsersWebHandler(svc, webTestCookie)
	e.GET(middleware.LoginFormPath, h.LoginForm)
	e.POST("/login", h.Login)
	return e
}

func postForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUsersWebHandler_LoginSuccessStartsSession(t *testing.T) {
	svc := newStubAuthService()
	svc.users["alice"] = "pass123"
	e := newWebApp(svc)

	rec := postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"pass123"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to root, got %q", loc)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatalf("expected a session cookie")
	}
}

func TestUsersWebHandler_LoginFailureRedirectsWithErrorFlag(t *testing.T) {
	svc := newStubAuthService()
	svc.users["alice"] = "pass123"
	e := newWebApp(svc)

	rec := postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != middleware.LoginFormPath+"?error=true" {
		t.Fatalf("expected redirect with error flag, got %q", loc)
	}
}

func TestUsersWebHandler_LoginStoreOutagePropagates(t *testing.T) {
	storeDown := errors.New("connection refused")
	svc := newStubAuthService()
	svc.storeErr = storeDown

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("web-test-signing-key"))))
	h := NewUsersWebHandler(svc, webTestCookie)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(url.Values{"username": {"alice"}, "password": {"pass123"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Only a credentials failure may redirect with the error flag; anything
	// else goes to the central error handler.
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected the store error to propagate, got response %d", rec.Code)
	}
	if !errors.Is(err, storeDown) {
		t.Fatalf("expected the store error, got %v", err)
	}
}
