package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, ttl time.Duration, claims jwt.MapClaims) string {
	t.Helper()
	now := time.Now()
	if _, ok := claims["iat"]; !ok {
		claims["iat"] = now.Unix()
	}
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = now.Add(ttl).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c), called
}

func TestAuth_ValidToken(t *testing.T) {
	token := signTestToken(t, testSecret, time.Hour, jwt.MapClaims{
		"sub":   float64(42),
		"email": "a@example.com",
		"roles": []string{"user", "admin"},
	})

	c, err, called := runAuth(t, "Bearer "+token)
	if err != nil || !called {
		t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
	}
	if got, _ := c.Get("user_id").(int64); got != 42 {
		t.Fatalf("expected user_id 42, got %v", c.Get("user_id"))
	}
	if got, _ := c.Get("email").(string); got != "a@example.com" {
		t.Fatalf("unexpected email: %v", c.Get("email"))
	}
	roles, _ := c.Get("roles").([]string)
	if len(roles) != 2 || roles[1] != "admin" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err, called := runAuth(t, "")
	assertUnauthorized(t, err, called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err, called := runAuth(t, "Token abc")
	assertUnauthorized(t, err, called)
}

func TestAuth_TamperedToken(t *testing.T) {
	token := signTestToken(t, "other-secret", time.Hour, jwt.MapClaims{"sub": float64(1)})
	_, err, called := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err, called)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signTestToken(t, testSecret, -time.Hour, jwt.MapClaims{"sub": float64(1)})
	_, err, called := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err, called)
}

func TestAuth_MissingSubject(t *testing.T) {
	token := signTestToken(t, testSecret, time.Hour, jwt.MapClaims{"email": "a@example.com"})
	_, err, called := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err, called)
}

func TestAuth_RejectsUnexpectedAlgorithm(t *testing.T) {
	// alg=none style tokens must never be accepted.
	claims := jwt.MapClaims{"sub": float64(1), "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	_, mwErr, called := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, mwErr, called)
}

func assertUnauthorized(t *testing.T, err error, called bool) {
	t.Helper()
	if called {
		t.Fatalf("next handler should not be called")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
