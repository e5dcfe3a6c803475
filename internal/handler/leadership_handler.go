package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/internal/utils"
)

// LeadershipHandler wires the public leadership roster endpoints.
type LeadershipHandler struct {
	service service.LeadershipService
	avatars service.AvatarService
	logger  zerolog.Logger
}

// NewLeadershipHandler constructs the handler.
func NewLeadershipHandler(service service.LeadershipService, avatars service.AvatarService, logger zerolog.Logger) *LeadershipHandler {
	return &LeadershipHandler{
		service: service,
		avatars: avatars,
		logger:  logger.With().Str("component", "leadership_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated roster listing.
func (h *LeadershipHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin attaches the roster management endpoints.
func (h *LeadershipHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/avatar", h.uploadAvatar)
}

func (h *LeadershipHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "leadership retrieved", entries)
}

func (h *LeadershipHandler) create(c *fiber.Ctx) error {
	var payload dto.LeadershipCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "leadership entry created", entry)
}

func (h *LeadershipHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LeadershipUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.Update(c.Context(), id, payload); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "leadership entry updated", nil)
}

func (h *LeadershipHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "leadership entry deleted", fiber.Map{"id": id})
}

func (h *LeadershipHandler) uploadAvatar(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "no file provided")
	}

	path, err := h.avatars.StoreLeadershipAvatar(c.Context(), file)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.service.SetAvatarPath(c.Context(), id, path); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "avatar uploaded", dto.AvatarResponse{AvatarPath: path})
}

func (h *LeadershipHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrLeadershipNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "leadership entry not found")
	case errors.Is(err, service.ErrUploadMissing):
		return utils.SendError(c, fiber.StatusBadRequest, "no file provided")
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, "file type not allowed")
	case isValidationError(err):
		return utils.SendValidationErrors(c, utils.FieldErrorsFrom(err))
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
