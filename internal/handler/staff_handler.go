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

// StaffHandler wires staff roster endpoints.
type StaffHandler struct {
	service service.StaffService
	logger  zerolog.Logger
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(service service.StaffService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		logger:  logger.With().Str("component", "staff_handler").Logger(),
	}
}

// Register attaches staff endpoints. Reads are open to any authenticated
// user; field updates require curator or admin, roster membership changes
// require admin.
func (h *StaffHandler) Register(router fiber.Router) {
	privileged := middleware.RequireRole(models.RoleCurator, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Get("", h.roster)
	router.Post("", adminOnly, h.add)
	router.Patch("/:id", privileged, h.update)
	router.Delete("/:id", adminOnly, h.remove)
}

func (h *StaffHandler) roster(c *fiber.Ctx) error {
	roster, err := h.service.Roster(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "staff retrieved", roster)
}

func (h *StaffHandler) add(c *fiber.Ctx) error {
	var payload dto.StaffAddRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Add(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "staff member added", record)
}

func (h *StaffHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.StaffUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Update(c.Context(), id, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "staff member updated", nil)
}

func (h *StaffHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Remove(c.Context(), id, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "staff member removed", fiber.Map{"id": id})
}

func (h *StaffHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "staff member not found")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrAlreadyStaff):
		return utils.SendError(c, fiber.StatusConflict, "already a staff member")
	case isValidationError(err):
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
