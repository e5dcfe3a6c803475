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

// InactiveHandler wires the leave-request workflow endpoints.
type InactiveHandler struct {
	service service.InactiveService
	logger  zerolog.Logger
}

// NewInactiveHandler constructs the handler.
func NewInactiveHandler(service service.InactiveService, logger zerolog.Logger) *InactiveHandler {
	return &InactiveHandler{
		service: service,
		logger:  logger.With().Str("component", "inactive_handler").Logger(),
	}
}

// Register attaches leave-request endpoints. Listing and submitting are open
// to any authenticated user; review requires curator or admin.
func (h *InactiveHandler) Register(router fiber.Router) {
	review := middleware.RequireRole(models.RoleCurator, models.RoleAdmin)

	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/:id/approve", review, h.approve)
	router.Post("/:id/reject", review, h.reject)
}

func (h *InactiveHandler) list(c *fiber.Ctx) error {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	requests, err := h.service.List(c.Context(), viewer)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "requests retrieved", requests)
}

func (h *InactiveHandler) create(c *fiber.Ctx) error {
	var payload dto.InactiveCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "request submitted", request)
}

func (h *InactiveHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Approve(c.Context(), id, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "request approved", fiber.Map{"id": id})
}

func (h *InactiveHandler) reject(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InactiveRejectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Reject(c.Context(), id, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "request rejected", fiber.Map{"id": id})
}

func (h *InactiveHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "request not found or already reviewed")
	case errors.Is(err, service.ErrNotStaff):
		return utils.SendError(c, fiber.StatusForbidden, "only a staff member may submit a leave request")
	case errors.Is(err, service.ErrInvalidInterval):
		return utils.SendError(c, fiber.StatusBadRequest, "end of leave must be after its start")
	case isValidationError(err):
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
