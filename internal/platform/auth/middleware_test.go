package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testCfg = JWTConfig{Secret: []byte("test-secret"), Issuer: "sehat-test"}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uuid.UUID
	handler := mw(func(c echo.Context) error {
		seen = UserIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, seen, err
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := IssueToken(testCfg, userID, time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	_, seen, err := doRequest(t, JWTMiddleware(testCfg), "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != userID {
		t.Errorf("expected user id %s on context, got %s", userID, seen)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, _, err := doRequest(t, JWTMiddleware(testCfg), "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	_, _, err := doRequest(t, JWTMiddleware(testCfg), "Token abc")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token, err := IssueToken(JWTConfig{Secret: []byte("other"), Issuer: "sehat-test"}, uuid.New(), time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, _, err = doRequest(t, JWTMiddleware(testCfg), "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token, err := IssueToken(testCfg, uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, _, err = doRequest(t, JWTMiddleware(testCfg), "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	_, seen, err := doRequest(t, DevAuthMiddleware(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != DevUserID {
		t.Errorf("expected dev user id, got %s", seen)
	}
}

func TestUserIDFromContext_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := UserIDFromContext(req.Context()); id != uuid.Nil {
		t.Errorf("expected uuid.Nil, got %s", id)
	}
}
