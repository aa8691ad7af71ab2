package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwthandling "github.com/P2B-ARIF/facebook-info-api-backend/pkg/jwt-handling"
	userTypes "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/types"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouterWith(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.POST("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return router
}

func TestRequirePayload(t *testing.T) {
	router := testRouterWith(RequirePayload())

	t.Run("without payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.de"}`))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestGetAndValidateUserJWT(t *testing.T) {
	router := testRouterWith(GetAndValidateUserJWT("testkey"))

	t.Run("without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with malformed token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with expired token", func(t *testing.T) {
		token, err := jwthandling.GenerateNewUserToken(-time.Minute, "id", "a@test.de", "testkey")
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with valid token", func(t *testing.T) {
		token, err := jwthandling.GenerateNewUserToken(time.Hour, "id", "a@test.de", "testkey")
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

type fakeUserGetter struct {
	user userTypes.User
	err  error
}

func (f fakeUserGetter) GetUserByEmail(email string) (userTypes.User, error) {
	return f.user, f.err
}

func TestGetAndValidateUserJWTWithMembership(t *testing.T) {
	token, err := jwthandling.GenerateNewUserToken(time.Hour, "id", "a@test.de", "testkey")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("with active membership", func(t *testing.T) {
		router := testRouterWith(GetAndValidateUserJWTWithMembership("testkey", fakeUserGetter{
			user: userTypes.User{Email: "a@test.de", Membership: true},
		}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with expired membership", func(t *testing.T) {
		router := testRouterWith(GetAndValidateUserJWTWithMembership("testkey", fakeUserGetter{
			user: userTypes.User{Email: "a@test.de", Membership: false},
		}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"expired":true`) {
			t.Errorf("expected membership expired response, got: %s", w.Body.String())
		}
	})

	t.Run("with unknown account", func(t *testing.T) {
		router := testRouterWith(GetAndValidateUserJWTWithMembership("testkey", fakeUserGetter{
			err: errors.New("user not found"),
		}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

type fakeIPChecker struct {
	allowed map[string]bool
	err     error
}

func (f fakeIPChecker) IsIPAllowed(ip string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[ip], nil
}

func TestIPAllowlist(t *testing.T) {
	t.Run("with allowed IP", func(t *testing.T) {
		router := testRouterWith(IPAllowlist(fakeIPChecker{allowed: map[string]bool{"203.0.113.7": true}}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with unknown IP", func(t *testing.T) {
		router := testRouterWith(IPAllowlist(fakeIPChecker{allowed: map[string]bool{}}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.23")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("fails closed on store error", func(t *testing.T) {
		router := testRouterWith(IPAllowlist(fakeIPChecker{err: errors.New("db down")}))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestHasValidAPIKey(t *testing.T) {
	router := testRouterWith(HasValidAPIKey([]string{"valid-key"}))

	t.Run("without key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Api-Key", "other-key")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with valid key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Api-Key", "valid-key")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
