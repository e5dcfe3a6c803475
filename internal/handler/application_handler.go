package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/internal/utils"
)

// ApplicationHandler wires leadership-candidate application endpoints.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated submission endpoint.
func (h *ApplicationHandler) RegisterPublic(router fiber.Router) {
	router.Post("", h.submit)
}

// RegisterAdmin attaches the admin review listing.
func (h *ApplicationHandler) RegisterAdmin(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	var payload dto.ApplicationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *ApplicationHandler) list(c *fiber.Ctx) error {
	applications, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) handleError(c *fiber.Ctx, err error) error {
	if isValidationError(err) {
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	}
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
