package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/handler"
	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/internal/utils"
)

type mockAuthService struct {
	registerPayload dto.RegisterRequest
	session         dto.AuthResponse
	created         dto.CreatedUserResponse
	err             error
}

func (m *mockAuthService) Register(_ context.Context, payload dto.RegisterRequest, _ string) (dto.AuthResponse, error) {
	m.registerPayload = payload
	if m.err != nil {
		return dto.AuthResponse{}, m.err
	}
	return m.session, nil
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest, _ string) (dto.AuthResponse, error) {
	if m.err != nil {
		return dto.AuthResponse{}, m.err
	}
	return m.session, nil
}

func (m *mockAuthService) CreateUser(_ context.Context, _ dto.CreateUserRequest, _ service.Actor) (dto.CreatedUserResponse, error) {
	if m.err != nil {
		return dto.CreatedUserResponse{}, m.err
	}
	return m.created, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/auth"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := &mockAuthService{session: dto.AuthResponse{Token: "tok", UserID: 1, Nickname: "Alice", Role: "user"}}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{Nickname: "Alice", Password: "secret1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "tok", response.Data.Token)
	require.Equal(t, "Alice", svc.registerPayload.Nickname)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrNicknameTaken})

	resp := postJSON(t, app, "/api/auth/register", dto.RegisterRequest{Nickname: "Alice", Password: "secret1"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var response utils.APIResponse
	decodeResponse(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, "nickname already taken", response.Error)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	app := newAuthApp(&mockAuthService{err: service.ErrInvalidCredentials})

	resp := postJSON(t, app, "/api/auth/login", dto.LoginRequest{Nickname: "Alice", Password: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerRegisterBadBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
