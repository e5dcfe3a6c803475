package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/middleware"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/internal/utils"
)

// AuthHandler wires registration and login endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterAdmin attaches the privileged account-creation endpoint. It shares
// the public auth group, so the route carries its own authentication and
// role guard.
func (h *AuthHandler) RegisterAdmin(router fiber.Router, authenticate fiber.Handler) {
	router.Post("/create", authenticate, middleware.RequireRole(models.RoleAdmin), h.create)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Register(c.Context(), payload, c.IP())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", session)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Login(c.Context(), payload, c.IP())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "logged in", session)
}

func (h *AuthHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.CreateUser(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", created)
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNicknameTaken):
		return utils.SendError(c, fiber.StatusConflict, "nickname already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid nickname or password")
	case isValidationError(err):
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
