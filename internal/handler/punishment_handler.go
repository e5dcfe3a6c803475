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

// PunishmentHandler wires disciplinary ledger endpoints.
type PunishmentHandler struct {
	service service.PunishmentService
	logger  zerolog.Logger
}

// NewPunishmentHandler constructs the handler.
func NewPunishmentHandler(service service.PunishmentService, logger zerolog.Logger) *PunishmentHandler {
	return &PunishmentHandler{
		service: service,
		logger:  logger.With().Str("component", "punishment_handler").Logger(),
	}
}

// Register attaches punishment endpoints. History is readable by any
// authenticated user; issuing and expunging require curator or admin.
func (h *PunishmentHandler) Register(router fiber.Router) {
	privileged := middleware.RequireRole(models.RoleCurator, models.RoleAdmin)

	router.Get("/staff/:id", h.listByStaff)
	router.Post("", privileged, h.issue)
	router.Post("/:id/remove", privileged, h.remove)
}

func (h *PunishmentHandler) listByStaff(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	punishments, err := h.service.ListByStaff(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "punishments retrieved", punishments)
}

func (h *PunishmentHandler) issue(c *fiber.Ctx) error {
	var payload dto.PunishmentIssueRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	punishment, err := h.service.Issue(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "punishment issued", punishment)
}

func (h *PunishmentHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PunishmentRemoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Remove(c.Context(), id, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "punishment removed", fiber.Map{"id": id})
}

func (h *PunishmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPunishmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "punishment not found or already removed")
	case errors.Is(err, service.ErrStaffNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "staff member not found")
	case isValidationError(err):
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
