package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/service"
	"github.com/arizona-prime/community-api/internal/utils"
)

// ActivityLogHandler exposes the audit trail to admins.
type ActivityLogHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityLogHandler constructs the handler.
func NewActivityLogHandler(service service.ActivityService, logger zerolog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_log_handler").Logger(),
	}
}

// Register attaches the audit trail endpoint to an admin router group.
func (h *ActivityLogHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	entries, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "logs retrieved", entries)
}
