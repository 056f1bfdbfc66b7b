package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
)

const strongPassword = "Senha@123"

func newTestService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{Auth: config.Auth{Secret: "segredo", TokenDuration: time.Hour}}
	return NewService(users, cfg), users
}

func activeUser(t *testing.T) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: 3, Name: "Ana", Email: "ana@loja.com", RoleID: RoleViewer, Active: true, PasswordHash: string(hash)}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"curta", "Ab@1", false},
		{"sem maiúscula", "senha@123", false},
		{"sem número", "Senha@abc", false},
		{"sem especial", "Senha1234", false},
		{"forte", strongPassword, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	ctx := context.Background()

	t.Run("gera token válido", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByEmail(ctx, "ana@loja.com").Return(activeUser(t), nil)

		token, err := service.LoginUser(ctx, " Ana@Loja.com ", strongPassword)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 3, claims.UserID)
		assert.Equal(t, RoleViewer, claims.UserRoleID)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByEmail(ctx, "ana@loja.com").Return(activeUser(t), nil)

		_, err := service.LoginUser(ctx, "ana@loja.com", "Outra@123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("usuário desativado", func(t *testing.T) {
		service, users := newTestService(t)
		user := activeUser(t)
		user.Active = false
		users.EXPECT().GetUserByEmail(ctx, "ana@loja.com").Return(user, nil)

		_, err := service.LoginUser(ctx, "ana@loja.com", strongPassword)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrUserDisabled, authErr.Code)
		assert.Equal(t, 3, authErr.UserID)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByEmail(ctx, "x@loja.com").Return(nil, nil)

		_, err := service.LoginUser(ctx, "x@loja.com", strongPassword)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("campos vazios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser(ctx, "", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("novo usuário nasce desativado como visualizador", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByEmail(ctx, "bia@loja.com").Return(nil, nil)
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.False(t, u.Active)
			assert.Equal(t, RoleViewer, u.RoleID)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strongPassword)))
			created := *u
			created.ID = 10
			return &created, nil
		})

		user, err := service.CreateUser(ctx, &domain.User{Name: "Bia", Email: "BIA@loja.com"}, strongPassword)
		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByEmail(ctx, "ana@loja.com").Return(activeUser(t), nil)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@loja.com"}, strongPassword)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("senha fraca", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateUser(ctx, &domain.User{Name: "Ana", Email: "ana@loja.com"}, "123")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("troca a senha", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByID(ctx, 3).Return(activeUser(t), nil)
		users.EXPECT().UpdatePassword(ctx, 3, gomock.Any()).Return(nil)

		assert.NoError(t, service.ChangePassword(ctx, 3, strongPassword, "Nova@4567"))
	})

	t.Run("senha atual incorreta", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByID(ctx, 3).Return(activeUser(t), nil)

		err := service.ChangePassword(ctx, 3, "Errada@123", "Nova@4567")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("erro do banco", func(t *testing.T) {
		service, users := newTestService(t)
		users.EXPECT().GetUserByID(ctx, 3).Return(nil, errors.New("offline"))

		err := service.ChangePassword(ctx, 3, strongPassword, "Nova@4567")
		assert.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ValidateToken("nao-e-um-jwt")
	assert.Error(t, err)
}
