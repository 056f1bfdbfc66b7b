package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.App{Location: time.UTC},
		Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth:   config.Auth{Secret: "segredo-de-teste", TokenDuration: time.Hour},
	}
}

func TestNewHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	releases := mocks.NewMockReleaseRepository(ctrl)
	cfg := testConfig()

	authenticator := authenticating.NewService(users, cfg)
	h := NewHandler(cfg, Services{
		Authenticator: authenticator,
		Reporter:      reporting.NewService(releases),
	})

	t.Run("healthcheck é público", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("dashboard exige token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard?start_date=2024-03-11&end_date=2024-03-13", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("preflight de origem liberada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/releases", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("login e consulta autenticada", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("Senha@123"), bcrypt.MinCost)
		require.NoError(t, err)

		users.EXPECT().GetUserByEmail(gomock.Any(), "gerente@loja.com").Return(&domain.User{
			ID: 2, Name: "Gerente", Email: "gerente@loja.com", RoleID: authenticating.RoleManager,
			Active: true, PasswordHash: string(hash),
		}, nil)

		token, err := authenticator.LoginUser(context.Background(), "gerente@loja.com", "Senha@123")
		require.NoError(t, err)

		releases.EXPECT().ListByPeriod(gomock.Any(), gomock.Any()).Return([]*domain.Release{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?start_date=2024-03-11&end_date=2024-03-13", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestNew(t *testing.T) {
	_, err := New(testConfig(), Services{})
	assert.Error(t, err)
}
