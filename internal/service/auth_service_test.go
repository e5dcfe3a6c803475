package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
	"github.com/arizona-prime/community-api/pkg/token"
)

func newAuthService(t *testing.T, name string) (AuthService, *recorderStub, *token.Manager) {
	t.Helper()
	db := openTestDB(t, name)
	users := repository.NewUserRepository(db)
	tokens := token.NewManager("test-secret", time.Hour)
	recorder := &recorderStub{}
	svc := NewAuthService(users, tokens, validator.New(), recorder, 4, testLogger())
	return svc, recorder, tokens
}

func TestAuthServiceRegister(t *testing.T) {
	svc, recorder, tokens := newAuthService(t, "auth_register")

	session, err := svc.Register(context.Background(), dto.RegisterRequest{Nickname: "Alice", Password: "secret1"}, "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "Alice", session.Nickname)
	require.Equal(t, models.RoleUser, session.Role)
	require.NotEmpty(t, session.Token)

	userID, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, session.UserID, userID)

	require.Equal(t, "register", recorder.lastAction())
	require.Equal(t, "10.0.0.1", recorder.entries[0].IP)
}

func TestAuthServiceRegisterDuplicateNickname(t *testing.T) {
	svc, _, _ := newAuthService(t, "auth_duplicate")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Nickname: "Alice", Password: "secret1"}, "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{Nickname: "Alice", Password: "another1"}, "")
	require.ErrorIs(t, err, ErrNicknameTaken)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t, "auth_validation")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Nickname: "A", Password: "short"}, "")
	require.Error(t, err)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, recorder, _ := newAuthService(t, "auth_login")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Nickname: "Alice", Password: "secret1"}, "")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), dto.LoginRequest{Nickname: "Alice", Password: "secret1"}, "10.0.0.2")
	require.NoError(t, err)
	require.Equal(t, "Alice", session.Nickname)
	require.Equal(t, "login", recorder.lastAction())
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t, "auth_wrong_password")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{Nickname: "Alice", Password: "secret1"}, "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Nickname: "Alice", Password: "wrong"}, "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownNickname(t *testing.T) {
	svc, _, _ := newAuthService(t, "auth_unknown")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Nickname: "Nobody", Password: "secret1"}, "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceCreateUser(t *testing.T) {
	svc, recorder, _ := newAuthService(t, "auth_create_user")

	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{Nickname: "Bob", Password: "secret1"}, Actor{ID: 1, Role: models.RoleAdmin, IP: "10.0.0.3"})
	require.NoError(t, err)
	require.Equal(t, "Bob", created.Nickname)
	require.NotZero(t, created.UserID)
	require.Equal(t, "user_create", recorder.lastAction())
}
