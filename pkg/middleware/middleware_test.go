package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		header         string
		validator      fakeValidator
		expectedStatus int
	}{
		{"rota pública dispensa token", "/v1/login", "", fakeValidator{}, http.StatusNoContent},
		{"sem cabeçalho", "/v1/dashboard", "", fakeValidator{}, http.StatusUnauthorized},
		{"sem prefixo Bearer", "/v1/dashboard", "abc", fakeValidator{}, http.StatusUnauthorized},
		{"token inválido", "/v1/dashboard", "Bearer abc", fakeValidator{err: errors.New("assinatura")}, http.StatusUnauthorized},
		{"token expirado", "/v1/dashboard", "Bearer abc", fakeValidator{err: jwt.ErrTokenExpired}, http.StatusUnauthorized},
		{"token válido", "/v1/dashboard", "Bearer abc", fakeValidator{claims: &domain.Claims{UserID: 1}}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	t.Run("claims ficam no contexto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()

		var got *domain.Claims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = UserFromContext(r.Context())
		})
		AuthMiddleware(fakeValidator{claims: &domain.Claims{UserID: 7}})(next).ServeHTTP(rec, req)

		if assert.NotNil(t, got) {
			assert.Equal(t, 7, got.UserID)
		}
	})
}

func TestRoleMiddleware(t *testing.T) {
	withRole := func(role int) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/releases", nil)
		claims := &domain.Claims{UserID: 1, UserRoleID: role}
		return req.WithContext(context.WithValue(req.Context(), ContextKeyUser, claims))
	}

	t.Run("gerente pode escrever", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOrManager()(okHandler()).ServeHTTP(rec, withRole(RoleManager))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("visualizador não pode escrever", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOrManager()(okHandler()).ServeHTTP(rec, withRole(RoleViewer))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("sem usuário no contexto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AllRoles()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("origem liberada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight responde 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/releases", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
