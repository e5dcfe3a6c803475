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

// UserHandler wires profile endpoints.
type UserHandler struct {
	users   service.UserService
	avatars service.AvatarService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users service.UserService, avatars service.AvatarService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		avatars: avatars,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the profile endpoints to an authenticated router group.
// Privileged routes carry their own role guard since the group itself admits
// any authenticated user.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/me", h.me)
	router.Patch("/me", h.updateContacts)
	router.Post("/me/avatar", h.uploadAvatar)
	router.Get("/list/all", middleware.RequireRole(models.RoleAdmin), h.listAll)
	router.Get("/:id", h.profile)
	router.Patch("/:id/nickname", middleware.RequireRole(models.RoleAdmin), h.changeNickname)
	router.Patch("/:id/profile", middleware.RequireRole(models.RoleCurator, models.RoleAdmin), h.adminProfileUpdate)
}

func (h *UserHandler) me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	profile, err := h.users.Profile(c.Context(), user.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *UserHandler) profile(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.users.Profile(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *UserHandler) listAll(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) updateContacts(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.UpdateContactsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.users.UpdateContacts(c.Context(), user.ID, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", nil)
}

func (h *UserHandler) changeNickname(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.NicknameUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.users.ChangeNickname(c.Context(), id, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "nickname updated", nil)
}

func (h *UserHandler) adminProfileUpdate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdminProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.users.AdminProfileUpdate(c.Context(), id, payload, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", nil)
}

func (h *UserHandler) uploadAvatar(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "no file provided")
	}

	path, err := h.avatars.StoreUserAvatar(c.Context(), user.ID, file)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.users.SetAvatarPath(c.Context(), user.ID, path, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "avatar uploaded", dto.AvatarResponse{AvatarPath: path})
}

func (h *UserHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrNicknameTaken):
		return utils.SendError(c, fiber.StatusConflict, "nickname already taken")
	case errors.Is(err, service.ErrRoleChangeRequires):
		return utils.SendError(c, fiber.StatusForbidden, "only an admin may change a role")
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
